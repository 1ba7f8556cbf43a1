package sapling

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// log is the package logger. Engines copy it into Engine.Logger when none is
// set.
var log logrus.FieldLogger = newDefaultLogger()

func newDefaultLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	return l.WithField("component", "sapling")
}

// SetLogger replaces the package logger used for debug warnings and by
// engines created afterwards. nil restores the default stderr logger.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = newDefaultLogger()
	}
	log = l
}

// globalDebug enables tree sanity checks and per-frame stats.
var globalDebug bool

// SetDebugMode turns debug checks and stats logging on or off.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugStats holds per-frame timing and node metrics.
// Only populated when debug mode is on.
type debugStats struct {
	updateTime  time.Duration
	renderTime  time.Duration
	presentTime time.Duration
	nodeCount   int
	triangles   int
	scaled      bool
}

// debugLog logs timing and node stats at debug level.
func (e *Engine) debugLog(stats debugStats) {
	if !globalDebug {
		return
	}
	e.Logger.WithFields(logrus.Fields{
		"frame":     e.FrameCount,
		"update":    stats.updateTime,
		"render":    stats.renderTime,
		"present":   stats.presentTime,
		"total":     stats.updateTime + stats.renderTime + stats.presentTime,
		"nodes":     stats.nodeCount,
		"triangles": stats.triangles,
		"scaled":    stats.scaled,
	}).Debug("frame stats")
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("sapling debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		log.WithFields(logrus.Fields{"node": n.Name, "depth": depth}).
			Warnf("tree depth exceeds %d", debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		log.WithFields(logrus.Fields{"node": n.Name, "children": len(n.children)}).
			Warnf("child count exceeds %d", debugMaxChildCount)
	}
}
