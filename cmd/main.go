package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/iuricardoso/lineards"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "lineards",
		Usage: "demo and exercise driver for the lineards collections",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Value: "info",
				Usage: "log level (trace, debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			lvl, err := zerolog.ParseLevel(c.String("log"))
			if err != nil {
				return fmt.Errorf("bad log level %q: %w", c.String("log"), err)
			}
			zerolog.SetGlobalLevel(lvl)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
			return nil
		},
		Commands: []*cli.Command{
			demoCommand(),
			exerciseCommand(),
			dumpCommand(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func kindFromName(name string) (lineards.Kind, error) {
	switch name {
	case "vector":
		return lineards.KindVector, nil
	case "list":
		return lineards.KindList, nil
	}
	return lineards.KindUnknown, fmt.Errorf("unknown kind %q (want vector or list)", name)
}

func encodeInt(v int) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

func decodeInt(b []byte) int {
	return int(int32(binary.LittleEndian.Uint32(b)))
}

func intFormatter(w io.Writer, element []byte) {
	fmt.Fprintf(w, "%d ", decodeInt(element))
}

func textFormatter(w io.Writer, element []byte) {
	if i := bytes.IndexByte(element, 0); i >= 0 {
		element = element[:i]
	}
	fmt.Fprintf(w, "%s ", element)
}

func demoCommand() *cli.Command {
	kindFlag := &cli.StringFlag{
		Name:  "kind",
		Value: "vector",
		Usage: "backing to demo (vector or list)",
	}
	debugFlag := &cli.BoolFlag{
		Name:  "debug",
		Usage: "print a structural dump after every mutation",
	}

	return &cli.Command{
		Name:  "demo",
		Usage: "run the worked examples",
		Subcommands: []*cli.Command{
			{
				Name:  "stack",
				Usage: "push four ints, then pop the stack dry",
				Flags: []cli.Flag{kindFlag, debugFlag},
				Action: func(c *cli.Context) error {
					ds, err := newDemoInts(c, 4)
					if err != nil {
						return err
					}
					for _, v := range []int{10, 20, 30, 40} {
						if err := ds.Push(encodeInt(v)); err != nil {
							return err
						}
						fmt.Printf("push %d\n", v)
					}
					for !ds.IsEmpty() {
						v, err := ds.Pop()
						if err != nil {
							return err
						}
						fmt.Printf("pop  %d\n", decodeInt(v))
					}
					return ds.Free()
				},
			},
			{
				Name:  "queue",
				Usage: "enqueue six ints, then drain the queue in arrival order",
				Flags: []cli.Flag{kindFlag, debugFlag},
				Action: func(c *cli.Context) error {
					ds, err := newDemoInts(c, 6)
					if err != nil {
						return err
					}
					for _, v := range []int{1, 2, 3, 4, 5, 5} {
						if err := ds.Enqueue(encodeInt(v)); err != nil {
							return err
						}
						fmt.Printf("enqueue %d\n", v)
					}
					for !ds.IsEmpty() {
						v, err := ds.Dequeue()
						if err != nil {
							return err
						}
						fmt.Printf("dequeue %d\n", decodeInt(v))
					}
					return ds.Free()
				},
			},
			{
				Name:  "fruits",
				Usage: "edit a list of fruit names by position",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Value: "list", Usage: "backing to demo (vector or list)"},
					debugFlag,
				},
				Action: func(c *cli.Context) error {
					kind, err := kindFromName(c.String("kind"))
					if err != nil {
						return err
					}
					ds, err := lineards.NewWithConfig(lineards.Config{
						Kind:            kind,
						InitialCapacity: 3,
						ElementSize:     20,
					})
					if err != nil {
						return err
					}
					if c.Bool("debug") {
						ds.Debug(os.Stdout, textFormatter)
					}

					pad := func(s string) []byte {
						b := make([]byte, 20)
						copy(b, s)
						return b
					}
					type step struct {
						pos  int
						name string
					}
					for _, s := range []step{
						{0, "banana"}, {0, "apple"}, {1, "grape"}, {3, "orange"}, {2, "strawberry"},
					} {
						if err := ds.Insert(s.pos, pad(s.name)); err != nil {
							return err
						}
					}
					if err := ds.Set(3, pad("lemon")); err != nil {
						return err
					}
					if _, err := ds.Remove(2); err != nil {
						return err
					}

					for i := 0; i < ds.Size(); i++ {
						v, err := ds.Get(i)
						if err != nil {
							return err
						}
						fmt.Printf("%d: %s\n", i, bytes.TrimRight(v, "\x00"))
					}
					return ds.Free()
				},
			},
		},
	}
}

func newDemoInts(c *cli.Context, capacity int) (*lineards.DS, error) {
	kind, err := kindFromName(c.String("kind"))
	if err != nil {
		return nil, err
	}
	ds, err := lineards.NewWithConfig(lineards.Config{
		Kind:            kind,
		InitialCapacity: capacity,
		ElementSize:     4,
	})
	if err != nil {
		return nil, err
	}
	if c.Bool("debug") {
		ds.Debug(os.Stdout, intFormatter)
	}
	return ds, nil
}

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "load the arguments into a collection and print its structural dump",
		ArgsUsage: "element...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Value: "vector",
				Usage: "backing to load (vector or list)",
			},
			&cli.IntFlag{
				Name:  "element-size",
				Value: 16,
				Usage: "bytes reserved per element",
			},
		},
		Action: func(c *cli.Context) error {
			kind, err := kindFromName(c.String("kind"))
			if err != nil {
				return err
			}
			size := c.Int("element-size")
			ds, err := lineards.NewWithConfig(lineards.Config{
				Kind:            kind,
				InitialCapacity: c.NArg(),
				ElementSize:     size,
			})
			if err != nil {
				return err
			}
			for _, arg := range c.Args().Slice() {
				if len(arg) > size {
					return fmt.Errorf("element %q does not fit in %d bytes", arg, size)
				}
				b := make([]byte, size)
				copy(b, arg)
				if err := ds.InsertLast(b); err != nil {
					return err
				}
			}
			ds.Dump(os.Stdout, textFormatter)
			return ds.Free()
		},
	}
}
