package sim_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glinet-go/glinet/internal/sim"
)

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadScenario_EmptyPathReturnsDefault(t *testing.T) {
	scenario, err := sim.LoadScenario("")
	require.NoError(t, err)
	assert.Equal(t, "mt6000", scenario.Device.Model)
	assert.Len(t, scenario.Clients, 3)
	assert.Nil(t, scenario.Tailscale)
}

func TestLoadScenario_OverlayKeepsUnnamedSections(t *testing.T) {
	path := writeScenario(t, `
[device]
model = "x3000"

[[modems]]
bus = "0002:03:00.0"
carrier = "Telia"
connected = false
`)

	scenario, err := sim.LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "x3000", scenario.Device.Model)
	// Device keys the overlay does not name keep their defaults.
	assert.Equal(t, "4.5.16", scenario.Device.FirmwareVersion)

	// The modem list is replaced wholesale.
	require.Len(t, scenario.Modems, 1)
	assert.Equal(t, "0002:03:00.0", scenario.Modems[0].Bus)
	assert.Equal(t, "Telia", scenario.Modems[0].Carrier)
	assert.False(t, scenario.Modems[0].Connected)

	// Sections the overlay never names stay default.
	assert.Len(t, scenario.Clients, 3)
	assert.Len(t, scenario.MWAN.Interfaces, 2)
}

func TestLoadScenario_OverlayReplacesTunnel(t *testing.T) {
	path := writeScenario(t, `
[wireguard.tunnel]
name = "paris"
status = 2
`)

	scenario, err := sim.LoadScenario(path)
	require.NoError(t, err)
	require.NotNil(t, scenario.WireGuard.Tunnel)
	assert.Equal(t, "paris", scenario.WireGuard.Tunnel.Name)
	assert.Equal(t, 2, scenario.WireGuard.Tunnel.Status)
	// The default tunnel's counters do not leak into the replacement.
	assert.Zero(t, scenario.WireGuard.Tunnel.RxBytes)
}

func TestLoadScenario_OverlayAddsTailscale(t *testing.T) {
	path := writeScenario(t, `
[tailscale]
login_name = "ops@example.net"
status = 3
address_v4 = "100.84.0.9"
`)

	scenario, err := sim.LoadScenario(path)
	require.NoError(t, err)
	require.NotNil(t, scenario.Tailscale)
	assert.Equal(t, "ops@example.net", scenario.Tailscale.LoginName)
	assert.Equal(t, 3, scenario.Tailscale.Status)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := sim.LoadScenario(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario")
}

func TestLoadScenario_BadTOML(t *testing.T) {
	path := writeScenario(t, "device = [broken")
	_, err := sim.LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse scenario")
}
