package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/iuricardoso/lineards"
)

func word(v int) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

func unword(b []byte) int {
	return int(int32(binary.LittleEndian.Uint32(b)))
}

func main() {
	// every element is a fixed-width byte slot; ints ride in 4 bytes
	stack, err := lineards.NewVector(4, 4)
	if err != nil {
		panic(err)
	}
	for _, v := range []int{10, 20, 30, 40} {
		stack.Push(word(v))
	}
	for !stack.IsEmpty() {
		v, _ := stack.Pop()
		fmt.Printf("popped %d\n", unword(v))
	}

	// the same handle drives a linked list; its embedded cursor is the
	// cheap way to walk one
	list, err := lineards.NewList(4)
	if err != nil {
		panic(err)
	}
	for i := 1; i <= 5; i++ {
		list.InsertLast(word(i * 11))
	}

	it := list.Iterator()
	it.Reset()
	for it.HasNext() {
		v, _ := it.Get()
		fmt.Printf("%d ", unword(v))
		it.Next()
	}
	fmt.Println()

	// edit by position: the collection seeks the cursor there for you
	list.Insert(2, word(99))
	list.Remove(0)

	// dump the whole structure in textual form
	list.Dump(os.Stdout, func(w io.Writer, element []byte) {
		fmt.Fprintf(w, "%d ", unword(element))
	})

	fmt.Printf("fingerprint: %016x\n", list.Fingerprint())
}
