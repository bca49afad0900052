package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	RBTreeStatsName = "xmap/rbtree"
)

var (
	rotateLeftAttrs  = metric.WithAttributeSet(attribute.NewSet(attribute.String("rbtree.rotate.direction", Left.String())))
	rotateRightAttrs = metric.WithAttributeSet(attribute.NewSet(attribute.String("rbtree.rotate.direction", Right.String())))
)

type rbtreeStats struct {
	size        metric.Int64UpDownCounter
	insertCount metric.Int64Counter
	eraseCount  metric.Int64Counter
	rotateCount metric.Int64Counter
}

func (stats *rbtreeStats) RecordSize(delta int64) {
	if stats == nil || delta == 0 {
		return
	}
	stats.size.Add(context.Background(), delta)
}

func (stats *rbtreeStats) IncreaseInsertCount() {
	if stats == nil {
		return
	}
	stats.insertCount.Add(context.Background(), 1)
	stats.size.Add(context.Background(), 1)
}

func (stats *rbtreeStats) IncreaseEraseCount() {
	if stats == nil {
		return
	}
	stats.eraseCount.Add(context.Background(), 1)
	stats.size.Add(context.Background(), -1)
}

func (stats *rbtreeStats) IncreaseRotateCount(dir RBDirection) {
	if stats == nil {
		return
	}
	switch dir {
	case Left:
		stats.rotateCount.Add(context.Background(), 1, rotateLeftAttrs)
	case Right:
		stats.rotateCount.Add(context.Background(), 1, rotateRightAttrs)
	default:
	}
}

func newRBTreeStats(name string) *rbtreeStats {
	meterName := RBTreeStatsName
	if name != "" {
		meterName = fmt.Sprintf("%s/%s", RBTreeStatsName, name)
	}
	meter := otel.Meter(meterName)
	return &rbtreeStats{
		size: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"rbtree.size",
			metric.WithDescription("The number of elements in the red-black tree."),
		)),
		insertCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.insert.count",
			metric.WithDescription("The number of new keys inserted into the red-black tree."),
		)),
		eraseCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.erase.count",
			metric.WithDescription("The number of nodes erased from the red-black tree."),
		)),
		rotateCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.rotate.count",
			metric.WithDescription("The number of rotations made by the red-black tree rebalancing."),
		)),
	}
}
