package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xtreemap/lib/infra"
)

// loggingListener traces mutations through a zap logger. It stands in
// for an interactive harness: each record carries enough of the node
// view to replay the shape changes offline.
type loggingListener[K infra.OrderedKey, V any] struct {
	logger *zap.Logger
}

func (l *loggingListener[K, V]) OnPut(node RBNode[K, V]) {
	l.logger.Info("treemap put",
		zap.Any("key", node.Key()),
		zap.Bool("red", node.Color() == Red),
		zap.Bool("root", node.Parent() == nil),
	)
}

func (l *loggingListener[K, V]) OnRemove(key K, val V) {
	l.logger.Info("treemap remove",
		zap.Any("key", key),
	)
}

func (l *loggingListener[K, V]) OnClear() {
	l.logger.Info("treemap clear")
}

func NewLoggingListener[K infra.OrderedKey, V any](logger *zap.Logger) TreeMapListener[K, V] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &loggingListener[K, V]{logger: logger}
}
