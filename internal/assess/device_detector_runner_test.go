package assess

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/cases"

	"github.com/fulmenhq/iconcheck/pkg/config"
	"github.com/fulmenhq/iconcheck/pkg/devicedetector"
)

func TestDeviceDetectorRunner(t *testing.T) {
	f := newFixture(t).baseline()
	f.write("tests-ignore.yml", "less_important_device_detector_icons:\n  os: [LIN]\n")
	f.png("src/brand/Apple.png", 64, 64)
	f.write("src/os/WIN.svg", "<svg/>")

	ws := f.workspace()
	ws.Classifier = devicedetector.StaticClassifier{Categories: devicedetector.Categories{
		"brand": {"AP": "Apple", "BN": "Barnes & Noble"},
		"os":    {"WIN": "Windows", "LIN": "GNU/Linux"},
	}}

	res := assessWith(t, NewDeviceDetectorRunner(), ws)
	require.Len(t, res.Issues, 2)

	assert.Equal(t, SeverityError, res.Issues[0].Severity)
	assert.Equal(t, "src/brand/Barnes_Noble", res.Issues[0].File)
	assert.Equal(t, "icon for brand Barnes_Noble (Barnes & Noble) is missing", res.Issues[0].Message)

	assert.Equal(t, SeverityWarning, res.Issues[1].Severity)
	assert.Equal(t, "src/os/LIN", res.Issues[1].File)
}

func TestDeviceDetectorRunner_ClassifierFailure(t *testing.T) {
	f := newFixture(t).baseline()
	ws := f.workspace()
	ws.Classifier = devicedetector.StaticClassifier{Err: devicedetector.ErrMalformedOutput}

	_, err := NewDeviceDetectorRunner().Assess(context.Background(), ws)
	require.Error(t, err)
	assert.True(t, errors.Is(err, devicedetector.ErrMalformedOutput))
}

func TestDeviceDetectorRunner_DisabledWithoutCommand(t *testing.T) {
	f := newFixture(t).baseline()
	ws := NewWorkspace(f.root, func() config.Config {
		c := config.Default()
		c.DeviceDetector.Command = nil
		return c
	}())
	require.Nil(t, ws.Classifier)

	res := assessWith(t, NewDeviceDetectorRunner(), ws)
	assert.NotEmpty(t, res.SkipReason)
}

func TestExpectedIcons_CaseFoldedOrder(t *testing.T) {
	got := expectedIcons("brand", map[string]string{
		"1": "alcatel", "2": "Acer", "3": "ZTE", "4": "Barnes & Noble", "5": "Barnes  &  Noble",
	}, cases.Fold())

	var slugs []string
	for _, e := range got {
		slugs = append(slugs, e.slug)
	}
	assert.Equal(t, []string{"Acer", "alcatel", "Barnes_Noble", "ZTE"}, slugs)

	got = expectedIcons("os", map[string]string{"WIN": "Windows"}, cases.Fold())
	require.Len(t, got, 1)
	assert.Equal(t, "WIN", got[0].slug)
}
