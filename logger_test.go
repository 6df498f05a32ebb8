package fakertc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanikai/fakertc/internal/logging"
	"github.com/lanikai/fakertc/internal/sched"
)

func TestLevelsConfiguredAfterInitApply(t *testing.T) {
	require.NoError(t, logging.Configure("rtc=trace,rtclevels=debug"))
	defer logging.Configure("rtc=info,rtclevels=info")

	assert.Equal(t, logging.MaxLevel, logger().Level)

	pc := NewPeerConnection(Configuration{}, WithScheduler(sched.NewQueue()))
	assert.Equal(t, logging.MaxLevel, pc.log.Level)

	tagged := NewPeerConnection(Configuration{}, WithScheduler(sched.NewQueue()), WithLogTag("rtclevels"))
	assert.Equal(t, logging.Debug, tagged.log.Level)
	assert.Equal(t, "rtclevels", tagged.log.Tag)
}
