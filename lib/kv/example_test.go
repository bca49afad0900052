package kv_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benz9527/xmap/lib/infra"
	"github.com/benz9527/xmap/lib/kv"
	"github.com/benz9527/xmap/lib/xlog"
)

func ExampleNewTreeMap() {
	m := kv.NewTreeMap[int, string]()
	m.Insert(infra.NewPair(5, "x"))
	m.Insert(infra.NewPair(3, "y"))
	m.Insert(infra.NewPair(8, "z"))

	if _, ok := m.Insert(infra.NewPair(3, "w")); !ok {
		fmt.Println("3 exists")
	}
	_ = m.Erase(m.Find(5))

	for key, val := range m.All() {
		fmt.Println(key, val)
	}
	// Output:
	// 3 exists
	// 3 y
	// 8 z
}

func ExampleOrderedMap_Index() {
	m := kv.NewTreeMap[string, int]()
	_, err := m.At("hits")
	fmt.Println(errors.Is(err, kv.ErrIndexOutOfBound))

	*m.Index("hits")++
	*m.Index("hits")++
	fmt.Println(m.At("hits"))
	fmt.Println(m.Len())
	// Output:
	// true
	// 2 <nil>
	// 1
}

func ExampleIterator_Prev() {
	m := kv.NewTreeMap[int, int](kv.WithTreeMapDesc[int, int]())
	for i := 1; i <= 3; i++ {
		m.Set(i, i*i)
	}

	it := m.End()
	for it.Prev() == nil {
		fmt.Println(it.Key(), it.Val())
	}
	// Output:
	// 1 1
	// 2 4
	// 3 9
}

func ExampleWithTreeMapLogger() {
	var buf bytes.Buffer
	logger, err := xlog.NewXLogger(
		xlog.WithXLoggerWriter(&buf),
		xlog.WithXLoggerEncoder(xlog.JSON),
		xlog.WithXLoggerLevel(xlog.LogLevelDebug),
		xlog.WithXLoggerName("tree-map"),
	)
	if err != nil {
		panic(err)
	}

	m := kv.NewTreeMap[int, int](kv.WithTreeMapLogger[int, int](logger))
	m.Set(1, 1)
	m.Set(2, 4)
	m.Clear()
	fmt.Println(m.Empty())

	// Timestamps and callers vary, only the stable fields are printed.
	var entry struct {
		Msg       string `json:"msg"`
		Component string `json:"component"`
		Released  int64  `json:"released"`
	}
	for scanner := bufio.NewScanner(&buf); scanner.Scan(); {
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			panic(err)
		}
		fmt.Println(entry.Component, entry.Msg, entry.Released)
	}
	// Output:
	// true
	// tree-map [tree-map] clear 2
}
