package kv

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/benz9527/xmap/lib/infra"
	"github.com/benz9527/xmap/lib/tree"
	"github.com/benz9527/xmap/lib/xlog"
)

var _ OrderedMap[uint8, struct{}] = (*treeMap[uint8, struct{}])(nil)

// treeMap is not thread safe.
type treeMap[K any, V any] struct {
	tree   tree.RBTree[K, V]
	logger *zap.Logger
}

// misuse records the caller frames and logs the error before returning it.
func (m *treeMap[K, V]) misuse(err error, msg string, fields ...zap.Field) error {
	var es error
	if msg == "" {
		es = infra.WrapErrorStack(err)
	} else {
		es = infra.WrapErrorStackWithMessage(err, msg)
	}
	newFields := []zap.Field{
		xlog.ErrorStack(es),
	}
	newFields = append(newFields, fields...)
	m.logger.Debug("[tree-map] misuse", newFields...)
	return es
}

func (m *treeMap[K, V]) iterator(node tree.RBNode[K, V]) *Iterator[K, V] {
	return &Iterator[K, V]{
		owner: m,
		node:  node,
	}
}

func (m *treeMap[K, V]) Len() int64 {
	return m.tree.Len()
}

func (m *treeMap[K, V]) Empty() bool {
	return m.tree.Len() == 0
}

func (m *treeMap[K, V]) At(key K) (V, error) {
	if node := m.tree.Search(key); node != nil {
		return node.Val(), nil
	}
	var zero V
	return zero, m.misuse(ErrIndexOutOfBound, fmt.Sprintf("at key %v", key))
}

func (m *treeMap[K, V]) Index(key K) *V {
	var zero V
	node, _ := m.tree.Insert(key, zero)
	return &node.Pair().Second
}

func (m *treeMap[K, V]) Count(key K) int {
	if m.tree.Search(key) != nil {
		return 1
	}
	return 0
}

func (m *treeMap[K, V]) Find(key K) *Iterator[K, V] {
	if node := m.tree.Search(key); node != nil {
		return m.iterator(node)
	}
	return m.End()
}

func (m *treeMap[K, V]) Begin() *Iterator[K, V] {
	return m.iterator(m.tree.Begin())
}

func (m *treeMap[K, V]) End() *Iterator[K, V] {
	return m.iterator(m.tree.End())
}

func (m *treeMap[K, V]) Keys() []K {
	keys := make([]K, 0, m.tree.Len())
	m.tree.Foreach(func(idx int64, color tree.RBColor, key K, val V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

func (m *treeMap[K, V]) Values() []V {
	vals := make([]V, 0, m.tree.Len())
	m.tree.Foreach(func(idx int64, color tree.RBColor, key K, val V) bool {
		vals = append(vals, val)
		return true
	})
	return vals
}

func (m *treeMap[K, V]) Insert(pair infra.Pair[K, V]) (*Iterator[K, V], bool) {
	node, ok := m.tree.Insert(pair.First(), pair.Second)
	return m.iterator(node), ok
}

func (m *treeMap[K, V]) Set(key K, val V) (*Iterator[K, V], bool) {
	return m.Insert(infra.NewPair[K, V](key, val))
}

func (m *treeMap[K, V]) Erase(it *Iterator[K, V]) error {
	if !it.valid() || it.owner != m {
		return m.misuse(ErrInvalidIterator, "erase the iterator of another map")
	}
	if it.IsEnd() {
		return m.misuse(ErrInvalidIterator, "erase end")
	}
	if err := m.tree.Erase(it.node); err != nil {
		return m.misuse(fmt.Errorf("%w, %w", ErrInvalidIterator, err), "")
	}
	return nil
}

func (m *treeMap[K, V]) EraseKey(key K) int {
	if _, err := m.tree.Remove(key); err != nil {
		return 0
	}
	return 1
}

func (m *treeMap[K, V]) Clone() OrderedMap[K, V] {
	return &treeMap[K, V]{
		tree:   m.tree.Clone(),
		logger: m.logger,
	}
}

// Assign replaces the elements by the src's. The ordering of src is
// adopted if src is a tree map as well.
func (m *treeMap[K, V]) Assign(src OrderedMapReader[K, V]) {
	if src == nil {
		return
	}
	that, ok := src.(*treeMap[K, V])
	if ok && that == m {
		return
	}

	released := m.tree.Len()
	if ok {
		m.tree.Assign(that.tree)
	} else {
		// src may be a view of m itself, so it is drained before the release.
		pairs := make([]infra.Pair[K, V], 0, src.Len())
		for key, val := range src.All() {
			pairs = append(pairs, infra.NewPair[K, V](key, val))
		}
		m.tree.Release()
		for _, pair := range pairs {
			m.tree.Insert(pair.First(), pair.Second)
		}
	}
	m.logger.Debug("[tree-map] assign",
		zap.Int64("released", released),
		zap.Int64("assigned", m.tree.Len()),
	)
}

func (m *treeMap[K, V]) Clear() {
	released := m.tree.Len()
	m.tree.Release()
	m.logger.Debug("[tree-map] clear", zap.Int64("released", released))
}

type treeMapCfg[K any, V any] struct {
	less     infra.LessComparator[K]
	treeOpts []tree.RBTreeOpt[K, V]
	logger   *zap.Logger
}

type TreeMapOption[K any, V any] func(cfg *treeMapCfg[K, V])

// WithTreeMapDesc reverses the order of the comparator.
func WithTreeMapDesc[K any, V any]() TreeMapOption[K, V] {
	return func(cfg *treeMapCfg[K, V]) {
		cfg.treeOpts = append(cfg.treeOpts, tree.WithRBTreeDesc[K, V]())
	}
}

func WithTreeMapComparator[K any, V any](less infra.LessComparator[K]) TreeMapOption[K, V] {
	return func(cfg *treeMapCfg[K, V]) {
		if less != nil {
			cfg.less = less
		}
	}
}

func WithTreeMapRemoveBorrowPred[K any, V any]() TreeMapOption[K, V] {
	return func(cfg *treeMapCfg[K, V]) {
		cfg.treeOpts = append(cfg.treeOpts, tree.WithRBTreeRemoveBorrowPred[K, V]())
	}
}

// WithTreeMapStats records the tree stats by the global otel meter provider.
func WithTreeMapStats[K any, V any](name string) TreeMapOption[K, V] {
	return func(cfg *treeMapCfg[K, V]) {
		cfg.treeOpts = append(cfg.treeOpts, tree.WithRBTreeStats[K, V](name))
	}
}

func WithTreeMapLogger[K any, V any](logger *zap.Logger) TreeMapOption[K, V] {
	return func(cfg *treeMapCfg[K, V]) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func NewTreeMap[K infra.OrderedKey, V any](opts ...TreeMapOption[K, V]) OrderedMap[K, V] {
	return NewTreeMapFunc[K, V](infra.Less[K], opts...)
}

// NewTreeMapFunc builds a tree map ordered by an arbitrary strict weak
// ordering. The key equality is derived from it.
func NewTreeMapFunc[K any, V any](less infra.LessComparator[K], opts ...TreeMapOption[K, V]) OrderedMap[K, V] {
	cfg := &treeMapCfg[K, V]{
		less:     less,
		treeOpts: make([]tree.RBTreeOpt[K, V], 0, 4),
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}
	return &treeMap[K, V]{
		tree:   tree.NewRBTreeFunc[K, V](cfg.less, cfg.treeOpts...),
		logger: cfg.logger,
	}
}
