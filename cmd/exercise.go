package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/iuricardoso/lineards"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// once the model reaches this many elements the op mix turns into
// removal pressure, so a long run stays bounded
const maxExerciseSize = 4096

type exerciseConfig struct {
	Ops         int    `toml:"ops"`
	Kind        string `toml:"kind"`
	Interface   string `toml:"interface"`
	Seed        int64  `toml:"seed"`
	ElementSize int    `toml:"element_size"`
	Capacity    int    `toml:"capacity"`
}

func defaultExerciseConfig() exerciseConfig {
	return exerciseConfig{
		Ops:         10000,
		Kind:        "vector",
		Interface:   "positional",
		ElementSize: 4,
		Capacity:    8,
	}
}

func exerciseCommand() *cli.Command {
	return &cli.Command{
		Name:  "exercise",
		Usage: "hammer a collection with random operations, verifying every one against a model",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "ops", Value: 10000, Usage: "number of operations to run"},
			&cli.StringFlag{Name: "kind", Value: "vector", Usage: "backing to exercise (vector or list)"},
			&cli.StringFlag{Name: "iface", Value: "positional", Usage: "drive by position or through the cursor"},
			&cli.Int64Flag{Name: "seed", Usage: "rng seed (0 picks one from the clock)"},
			&cli.IntFlag{Name: "element-size", Value: 4, Usage: "bytes per element"},
			&cli.IntFlag{Name: "capacity", Value: 8, Usage: "initial capacity for a vector"},
			&cli.StringFlag{Name: "config", Usage: "TOML file with the same settings; flags override it"},
			&cli.StringFlag{Name: "dump", Usage: "write a structural dump after every mutation to this file"},
		},
		Action: runExercise,
	}
}

func loadExerciseConfig(c *cli.Context) (exerciseConfig, error) {
	cfg := defaultExerciseConfig()
	if path := c.String("config"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if c.IsSet("ops") {
		cfg.Ops = c.Int("ops")
	}
	if c.IsSet("kind") {
		cfg.Kind = c.String("kind")
	}
	if c.IsSet("iface") {
		cfg.Interface = c.String("iface")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Int64("seed")
	}
	if c.IsSet("element-size") {
		cfg.ElementSize = c.Int("element-size")
	}
	if c.IsSet("capacity") {
		cfg.Capacity = c.Int("capacity")
	}

	if cfg.Ops <= 0 {
		return cfg, fmt.Errorf("ops must be positive, got %d", cfg.Ops)
	}
	if cfg.Interface != "positional" && cfg.Interface != "cursor" {
		return cfg, fmt.Errorf("unknown interface %q (want positional or cursor)", cfg.Interface)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

type exerciseStats struct {
	mutations int
	reads     int
	posErrs   int
	unchanged int
}

// exerciseRun drives one collection and a plain slice model through the
// same random operations; any disagreement is a bug
type exerciseRun struct {
	cfg   exerciseConfig
	rng   *rand.Rand
	ds    *lineards.DS
	model [][]byte
	pos   int // mirror of the cursor position in cursor mode
	stats exerciseStats
}

func runExercise(c *cli.Context) error {
	cfg, err := loadExerciseConfig(c)
	if err != nil {
		return err
	}
	kind, err := kindFromName(cfg.Kind)
	if err != nil {
		return err
	}
	ds, err := lineards.NewWithConfig(lineards.Config{
		Kind:            kind,
		InitialCapacity: cfg.Capacity,
		ElementSize:     cfg.ElementSize,
	})
	if err != nil {
		return err
	}
	if path := c.String("dump"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		ds.Debug(f, func(w io.Writer, element []byte) {
			fmt.Fprintf(w, "%x ", element)
		})
		log.Debug().Str("path", path).Msg("structural dumps attached")
	}

	log.Info().
		Str("kind", cfg.Kind).
		Str("iface", cfg.Interface).
		Int64("seed", cfg.Seed).
		Int("ops", cfg.Ops).
		Int("element_size", cfg.ElementSize).
		Msg("exercise starting")

	e := &exerciseRun{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed)), ds: ds}
	start := time.Now()
	for i := 0; i < cfg.Ops; i++ {
		if cfg.Interface == "cursor" {
			err = e.stepCursor()
		} else {
			err = e.stepPositional()
		}
		if err == nil {
			err = e.verify()
		}
		if err != nil {
			log.Error().Int("step", i).Int64("seed", cfg.Seed).Msg("exercise diverged")
			return err
		}
	}
	if err := e.crossCheckFingerprint(); err != nil {
		return err
	}

	log.Info().
		Int("mutations", e.stats.mutations).
		Int("reads", e.stats.reads).
		Int("position_errors", e.stats.posErrs).
		Int("unchanged", e.stats.unchanged).
		Int("final_size", e.ds.Size()).
		Uint64("fingerprint", e.ds.Fingerprint()).
		Dur("elapsed", time.Since(start)).
		Msg("exercise passed")
	return nil
}

func (e *exerciseRun) randomElement() []byte {
	b := make([]byte, e.cfg.ElementSize)
	e.rng.Read(b)
	return b
}

func (e *exerciseRun) stepPositional() error {
	op := e.rng.Intn(6)
	if len(e.model) >= maxExerciseSize && op < 2 {
		op = 2 + e.rng.Intn(2)
	}

	switch op {
	case 0: // insert, sometimes past the end
		pos := e.rng.Intn(len(e.model) + 2)
		val := e.randomElement()
		err := e.ds.Insert(pos, val)
		if pos > len(e.model) {
			if !errors.Is(err, lineards.ErrPosition) {
				return fmt.Errorf("insert at %d past size %d: want ErrPosition, got %v", pos, len(e.model), err)
			}
			e.stats.posErrs++
			return nil
		}
		if err != nil {
			return fmt.Errorf("insert at %d: %w", pos, err)
		}
		e.model = append(e.model, nil)
		copy(e.model[pos+1:], e.model[pos:])
		e.model[pos] = val
		e.stats.mutations++

	case 1: // append
		val := e.randomElement()
		if err := e.ds.InsertLast(val); err != nil {
			return fmt.Errorf("insert last: %w", err)
		}
		e.model = append(e.model, val)
		e.stats.mutations++

	case 2: // remove, sometimes past the end
		pos := e.rng.Intn(len(e.model) + 1)
		got, err := e.ds.Remove(pos)
		if pos >= len(e.model) {
			if !errors.Is(err, lineards.ErrPosition) {
				return fmt.Errorf("remove at %d past size %d: want ErrPosition, got %v", pos, len(e.model), err)
			}
			e.stats.posErrs++
			return nil
		}
		if err != nil {
			return fmt.Errorf("remove at %d: %w", pos, err)
		}
		if !bytes.Equal(got, e.model[pos]) {
			return fmt.Errorf("remove at %d returned %x, model holds %x", pos, got, e.model[pos])
		}
		e.model = append(e.model[:pos], e.model[pos+1:]...)
		e.stats.mutations++

	case 3: // remove last
		got, err := e.ds.RemoveLast()
		if len(e.model) == 0 {
			if !errors.Is(err, lineards.ErrPosition) {
				return fmt.Errorf("remove last on empty: want ErrPosition, got %v", err)
			}
			e.stats.posErrs++
			return nil
		}
		if err != nil {
			return fmt.Errorf("remove last: %w", err)
		}
		last := len(e.model) - 1
		if !bytes.Equal(got, e.model[last]) {
			return fmt.Errorf("remove last returned %x, model holds %x", got, e.model[last])
		}
		e.model = e.model[:last]
		e.stats.mutations++

	case 4: // read, sometimes past the end
		pos := e.rng.Intn(len(e.model) + 1)
		got, err := e.ds.Get(pos)
		if pos >= len(e.model) {
			if !errors.Is(err, lineards.ErrPosition) {
				return fmt.Errorf("get at %d past size %d: want ErrPosition, got %v", pos, len(e.model), err)
			}
			e.stats.posErrs++
			return nil
		}
		if err != nil {
			return fmt.Errorf("get at %d: %w", pos, err)
		}
		if !bytes.Equal(got, e.model[pos]) {
			return fmt.Errorf("get at %d returned %x, model holds %x", pos, got, e.model[pos])
		}
		e.stats.reads++

	case 5: // rewrite, sometimes with the identical bytes
		pos := e.rng.Intn(len(e.model) + 1)
		val := e.randomElement()
		identical := false
		if pos < len(e.model) && e.rng.Intn(4) == 0 {
			val = append([]byte(nil), e.model[pos]...)
			identical = true
		}
		err := e.ds.Set(pos, val)
		switch {
		case pos >= len(e.model):
			if !errors.Is(err, lineards.ErrPosition) {
				return fmt.Errorf("set at %d past size %d: want ErrPosition, got %v", pos, len(e.model), err)
			}
			e.stats.posErrs++
		case identical:
			if !errors.Is(err, lineards.ErrUnchanged) {
				return fmt.Errorf("identical set at %d: want ErrUnchanged, got %v", pos, err)
			}
			e.stats.unchanged++
		default:
			if err != nil {
				return fmt.Errorf("set at %d: %w", pos, err)
			}
			e.model[pos] = val
			e.stats.mutations++
		}
	}
	return nil
}

func (e *exerciseRun) stepCursor() error {
	it := e.ds.Iterator()
	op := e.rng.Intn(6)
	if len(e.model) >= maxExerciseSize && op == 3 {
		op = 4
	}

	switch op {
	case 0: // advance
		err := it.Next()
		if e.pos >= len(e.model) {
			if !errors.Is(err, lineards.ErrPosition) {
				return fmt.Errorf("next at end: want ErrPosition, got %v", err)
			}
			e.stats.posErrs++
			return nil
		}
		if err != nil {
			return fmt.Errorf("next at %d: %w", e.pos, err)
		}
		e.pos++
		e.stats.reads++

	case 1: // read under the cursor
		got, err := it.Get()
		if e.pos >= len(e.model) {
			if !errors.Is(err, lineards.ErrPosition) {
				return fmt.Errorf("get at end: want ErrPosition, got %v", err)
			}
			e.stats.posErrs++
			return nil
		}
		if err != nil {
			return fmt.Errorf("cursor get at %d: %w", e.pos, err)
		}
		if !bytes.Equal(got, e.model[e.pos]) {
			return fmt.Errorf("cursor get at %d returned %x, model holds %x", e.pos, got, e.model[e.pos])
		}
		e.stats.reads++

	case 2: // rewrite under the cursor
		val := e.randomElement()
		identical := false
		if e.pos < len(e.model) && e.rng.Intn(4) == 0 {
			val = append([]byte(nil), e.model[e.pos]...)
			identical = true
		}
		err := it.Set(val)
		switch {
		case e.pos >= len(e.model):
			if !errors.Is(err, lineards.ErrPosition) {
				return fmt.Errorf("cursor set at end: want ErrPosition, got %v", err)
			}
			e.stats.posErrs++
		case identical:
			if !errors.Is(err, lineards.ErrUnchanged) {
				return fmt.Errorf("identical cursor set: want ErrUnchanged, got %v", err)
			}
			e.stats.unchanged++
		default:
			if err != nil {
				return fmt.Errorf("cursor set at %d: %w", e.pos, err)
			}
			e.model[e.pos] = val
			e.stats.mutations++
		}

	case 3: // add before the cursor
		val := e.randomElement()
		if err := it.Add(val); err != nil {
			return fmt.Errorf("cursor add at %d: %w", e.pos, err)
		}
		e.model = append(e.model, nil)
		copy(e.model[e.pos+1:], e.model[e.pos:])
		e.model[e.pos] = val
		e.stats.mutations++

	case 4: // remove under the cursor
		got, err := it.Remove()
		if e.pos >= len(e.model) {
			if !errors.Is(err, lineards.ErrPosition) {
				return fmt.Errorf("cursor remove at end: want ErrPosition, got %v", err)
			}
			e.stats.posErrs++
			return nil
		}
		if err != nil {
			return fmt.Errorf("cursor remove at %d: %w", e.pos, err)
		}
		if !bytes.Equal(got, e.model[e.pos]) {
			return fmt.Errorf("cursor remove at %d returned %x, model holds %x", e.pos, got, e.model[e.pos])
		}
		e.model = append(e.model[:e.pos], e.model[e.pos+1:]...)
		e.stats.mutations++

	case 5: // seek, sometimes out of range
		target := e.rng.Intn(len(e.model)+3) - 1
		err := it.Seek(target)
		if target < 0 || target > len(e.model) {
			if !errors.Is(err, lineards.ErrPosition) {
				return fmt.Errorf("seek to %d with size %d: want ErrPosition, got %v", target, len(e.model), err)
			}
			e.stats.posErrs++
			return nil
		}
		if err != nil {
			return fmt.Errorf("seek to %d: %w", target, err)
		}
		e.pos = target
		e.stats.reads++
	}
	return nil
}

// verify walks the whole collection against the model. In cursor mode
// the walk borrows the embedded cursor, so it seeks back afterwards.
func (e *exerciseRun) verify() error {
	if got := e.ds.Size(); got != len(e.model) {
		return fmt.Errorf("size %d, model holds %d", got, len(e.model))
	}
	if err := e.ds.CheckConsistency(); err != nil {
		return err
	}

	it := e.ds.Iterator()
	if e.cfg.Interface == "cursor" {
		if got := it.Position(); got != e.pos {
			return fmt.Errorf("cursor at %d, model tracks %d", got, e.pos)
		}
		if it.HasNext() != (e.pos < len(e.model)) {
			return fmt.Errorf("HasNext disagrees at position %d of %d", e.pos, len(e.model))
		}
	}

	if err := it.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	for i := range e.model {
		got, err := it.Get()
		if err != nil {
			return fmt.Errorf("walk get at %d: %w", i, err)
		}
		if !bytes.Equal(got, e.model[i]) {
			return fmt.Errorf("walk at %d found %x, model holds %x", i, got, e.model[i])
		}
		if err := it.Next(); err != nil {
			return fmt.Errorf("walk next at %d: %w", i, err)
		}
	}
	if it.HasNext() {
		return fmt.Errorf("cursor still has elements past position %d", len(e.model))
	}

	if e.cfg.Interface == "cursor" {
		if err := it.Seek(e.pos); err != nil {
			return fmt.Errorf("seek back to %d: %w", e.pos, err)
		}
	}
	return nil
}

// crossCheckFingerprint rebuilds the model into the other backing and
// expects the same logical hash
func (e *exerciseRun) crossCheckFingerprint() error {
	other := lineards.KindList
	if e.cfg.Kind == "list" {
		other = lineards.KindVector
	}
	twin, err := lineards.NewWithConfig(lineards.Config{
		Kind:            other,
		InitialCapacity: len(e.model),
		ElementSize:     e.cfg.ElementSize,
	})
	if err != nil {
		return err
	}
	for _, v := range e.model {
		if err := twin.InsertLast(v); err != nil {
			return err
		}
	}
	if a, b := e.ds.Fingerprint(), twin.Fingerprint(); a != b {
		return fmt.Errorf("fingerprint %x disagrees with rebuilt twin %x", a, b)
	}
	return nil
}
