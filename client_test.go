package winsign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/togglepad/winsign/internal/testutil/fakesigntool"
)

// staticLocator is a test locator with a fixed answer.
type staticLocator struct {
	path string
	err  error
}

func (l staticLocator) Locate() (string, error) { return l.path, l.err }

func TestNewClientDefaults(t *testing.T) {
	t.Parallel()

	c, err := NewClient()
	require.NoError(t, err)

	assert.NotNil(t, c.logger)
	assert.NotNil(t, c.runner)
	assert.NotNil(t, c.locator)
}

func TestWithSigntoolPinsLocation(t *testing.T) {
	t.Parallel()

	c, err := NewClient(WithSigntool("/pinned/signtool.exe"))
	require.NoError(t, err)

	path, err := c.Locate()
	require.NoError(t, err)
	assert.Equal(t, "/pinned/signtool.exe", path)
}

func TestLocatePropagatesFailure(t *testing.T) {
	t.Parallel()

	c, err := NewClient(WithLocator(staticLocator{err: ErrToolNotFound}))
	require.NoError(t, err)

	_, err = c.Locate()
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestWithExtraArgsAccumulates(t *testing.T) {
	t.Parallel()

	c, err := NewClient(WithExtraArgs("/sm"), WithExtraArgs("/ph"))
	require.NoError(t, err)

	assert.Equal(t, []string{"/sm", "/ph"}, c.extraArgs)
}

func TestWithRunnerOverridesDefault(t *testing.T) {
	t.Parallel()

	runner := fakesigntool.New()
	c, err := NewClient(WithRunner(runner))
	require.NoError(t, err)

	assert.Same(t, runner, c.runner.(*fakesigntool.Runner))
}
