package launcher

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-opera-adventure/inter/adventure"
	"github.com/rony4d/go-opera-adventure/opera/genesis"
)

func launch(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"opera-adventure"}, args...))
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	agent := genesis.FakeAddress(0)
	avatar := adventure.DeriveAvatarAddress(agent, 0)
	blocks := writeFile(t, "blocks.yaml", fmt.Sprintf(`
blocks:
  - index: 1
    txs:
      - signer: %q
        wanted: {season: 1, bounty: 100, avatar: %q}
      - signer: %q
        wanted: {season: 1, bounty: 99, avatar: %q}
`, agent.Hex(), avatar.Hex(), agent.Hex(), avatar.Hex()))

	out, err := launch(t, "--fakenet", "2", "--log.verbosity", "0", "run", "--blocks", blocks, "--receipts")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5, out)
	assert.True(t, strings.HasPrefix(lines[0], "genesis network=fake root=0x"), lines[0])
	assert.Contains(t, lines[1], "block 1 txs=2 applied=1 skipped=[1] gas=2 size=")
	assert.Contains(t, lines[2], "wanted ok gas=1")
	assert.Contains(t, lines[3], "wanted BelowMinimumBounty gas=1")
	assert.True(t, strings.HasPrefix(lines[4], "season 1 boss="), lines[4])
	assert.Contains(t, lines[4], "blocks=[1,101] next=151 investors=1 bounty=100.00 NCG")

	again, err := launch(t, "--fakenet", "2", "--log.verbosity", "0", "run", "--blocks", blocks, "--receipts")
	require.NoError(t, err)
	assert.Equal(t, out, again, "runs are reproducible")
}

func TestRunCommandNeedsGenesisForMainnet(t *testing.T) {
	_, err := launch(t, "--network", "main", "--log.verbosity", "0", "run")
	require.Error(t, err)
}

func TestGenesisCommand(t *testing.T) {
	out, err := launch(t, "--fakenet", "1", "--log.verbosity", "0", "genesis")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# root: 0x"))

	g, err := genesis.Parse([]byte(out), "")
	require.NoError(t, err)
	require.Len(t, g.Balances, 1)
	assert.Equal(t, genesis.FakeAddress(0), g.Balances[0].Address)
}

func TestWantedEncodeDecode(t *testing.T) {
	avatar := adventure.DeriveAvatarAddress(genesis.FakeAddress(0), 1)

	hex, err := launch(t, "wanted", "encode", "--season", "3", "--bounty", "150.25", "--avatar", avatar.Hex())
	require.NoError(t, err)
	hex = strings.TrimSpace(hex)
	assert.True(t, strings.HasPrefix(hex, "0x"))

	out, err := launch(t, "wanted", "decode", hex)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("season=3 bounty=150.25 NCG avatar=%s\n", avatar.Hex()), out)

	_, err = launch(t, "wanted", "decode", "0xdeadbeef")
	require.Error(t, err)
	_, err = launch(t, "wanted", "encode", "--season", "1", "--bounty", "1.001", "--avatar", avatar.Hex())
	require.Error(t, err)
	_, err = launch(t, "wanted", "encode", "--season", "1", "--bounty", "100", "--avatar", "alice")
	require.Error(t, err)
}
