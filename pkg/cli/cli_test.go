package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/Osub/ckb/pkg/config"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, env map[string]string, args ...string) result {
	t.Helper()
	app := &App{
		Build: BuildInfo{Version: "1.2.3", Commit: "abc123"},
		Env: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	}
	var stdout, stderr bytes.Buffer
	code := Execute(app, args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func initDir(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	res := run(t, nil, "init", "--dir", dir)
	if res.code != 0 {
		t.Fatalf("init failed: %s", res.stderr)
	}
	return dir, filepath.Join(dir, "default.json")
}

func TestInitAndValidate(t *testing.T) {
	_, path := initDir(t)

	res := run(t, nil, "validate", "--config", path)
	if res.code != 0 {
		t.Fatalf("validate exit = %d, stderr:\n%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "Config is valid:") {
		t.Errorf("unexpected output:\n%s", res.stdout)
	}
}

func TestInitDefaultsToConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	res := run(t, nil, "init", "--format", "yaml", "--miner")
	if res.code != 0 {
		t.Fatalf("init failed: %s", res.stderr)
	}
	for _, name := range []string{"default.yaml", "miner.yaml"} {
		if _, err := os.Stat(filepath.Join(home, ".ckb", name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestDefaultConfigFallsBackToYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if res := run(t, nil, "validate"); res.code != 1 || !strings.Contains(res.stderr, "default.json") {
		t.Fatalf("expected missing default.json, got %d:\n%s", res.code, res.stderr)
	}

	if res := run(t, nil, "init", "--format", "yaml"); res.code != 0 {
		t.Fatalf("init failed: %s", res.stderr)
	}
	res := run(t, nil, "validate")
	if res.code != 0 {
		t.Fatalf("validate exit = %d, stderr:\n%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, filepath.Join(home, ".ckb", "default.yaml")) {
		t.Errorf("expected default.yaml to be validated:\n%s", res.stdout)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir, _ := initDir(t)

	res := run(t, nil, "init", "--dir", dir)
	if res.code != 1 || !strings.Contains(res.stderr, "already exists") {
		t.Fatalf("expected conflict, got %d:\n%s", res.code, res.stderr)
	}

	if res := run(t, nil, "init", "--dir", dir, "--force"); res.code != 0 {
		t.Fatalf("forced init failed: %s", res.stderr)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "node.json")
	doc := `{"network": {"min_peers": 20, "bootnodes": ["/ip4/127.0.0.1/tcp/8115"]}, "rpc": {"max_request_body_size": 0}}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	res := run(t, nil, "validate", "--config", path)
	if res.code != 1 {
		t.Fatalf("expected exit 1, got %d", res.code)
	}
	for _, want := range []string{"network.min_peers", "network.bootnodes[0]", "rpc.max_request_body_size", "/p2p/<peerID>"} {
		if !strings.Contains(res.stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, res.stderr)
		}
	}
	if strings.Contains(res.stderr, "Error:") {
		t.Errorf("validation failures should not be reported as a command error:\n%s", res.stderr)
	}
}

func TestValidateMissingFile(t *testing.T) {
	res := run(t, nil, "validate", "--config", filepath.Join(t.TempDir(), "nope.json"))
	if res.code != 1 || !strings.Contains(res.stderr, "not found") {
		t.Fatalf("expected not found, got %d:\n%s", res.code, res.stderr)
	}
}

func TestValidateMiner(t *testing.T) {
	dir := t.TempDir()
	if res := run(t, nil, "init", "--dir", dir, "--miner"); res.code != 0 {
		t.Fatalf("init failed: %s", res.stderr)
	}
	args := []string{"validate", "--config", filepath.Join(dir, "default.json"), "--miner", filepath.Join(dir, "miner.json")}
	res := run(t, nil, args...)
	if res.code != 0 {
		t.Fatalf("validate failed:\n%s", res.stderr)
	}
	if strings.Contains(res.stderr, "Warning:") {
		t.Errorf("unexpected warning with the Miner module enabled:\n%s", res.stderr)
	}

	res = run(t, map[string]string{"CKB_RPC_MODULES": "Net,Chain"}, args...)
	if res.code != 0 {
		t.Fatalf("validate failed:\n%s", res.stderr)
	}
	if !strings.Contains(res.stderr, "does not enable Miner") {
		t.Errorf("expected a warning about the disabled Miner module, got:\n%s", res.stderr)
	}
}

func TestShowAppliesOverrides(t *testing.T) {
	_, path := initDir(t)
	env := map[string]string{
		"CKB_RPC_LISTEN_ADDRESS": "127.0.0.1:9000",
		"CKB_NETWORK_MAX_PEERS":  "16",
		"CKB_DATA_DIR":           "/from/env",
	}

	res := run(t, env, "show", "--config", path, "--data-dir", "/from/flag")
	if res.code != 0 {
		t.Fatalf("show failed:\n%s", res.stderr)
	}

	var cfg config.Config
	if err := json.Unmarshal([]byte(res.stdout), &cfg); err != nil {
		t.Fatalf("show output is not a config document: %v\n%s", err, res.stdout)
	}
	if cfg.RPC.ListenAddress != "127.0.0.1:9000" || cfg.Network.MaxPeers != 16 {
		t.Errorf("environment overrides missing: %+v", cfg)
	}
	if cfg.DataDir != "/from/flag" {
		t.Errorf("flag should win over environment, data_dir = %q", cfg.DataDir)
	}
}

func TestShowYAML(t *testing.T) {
	_, path := initDir(t)

	res := run(t, nil, "show", "--config", path, "--format", "yaml")
	if res.code != 0 {
		t.Fatalf("show failed:\n%s", res.stderr)
	}
	if !strings.Contains(res.stdout, "verification_level: Full") {
		t.Errorf("unexpected YAML output:\n%s", res.stdout)
	}
}

func TestPeerID(t *testing.T) {
	dir, path := initDir(t)
	env := map[string]string{"CKB_DATA_DIR": "data", "CKB_LOGGER_FILE": ""}

	first := run(t, env, "peer-id", "--config", path, "--listen-address", "/ip4/10.1.2.3/tcp/8115")
	if first.code != 0 {
		t.Fatalf("peer-id failed:\n%s", first.stderr)
	}
	if !strings.Contains(first.stdout, "/ip4/10.1.2.3/tcp/8115/p2p/12D3KooW") {
		t.Errorf("missing dialable address:\n%s", first.stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "secret_key")); err != nil {
		t.Fatalf("secret file not created: %v", err)
	}

	second := run(t, env, "peer-id", "--config", path, "--listen-address", "/ip4/10.1.2.3/tcp/8115")
	if first.stdout != second.stdout {
		t.Errorf("peer id changed between runs:\n%s\n%s", first.stdout, second.stdout)
	}
}

func TestVersion(t *testing.T) {
	res := run(t, nil, "version")
	if res.code != 0 || strings.TrimSpace(res.stdout) != "ckb 1.2.3 (commit abc123)" {
		t.Fatalf("unexpected version output: %q", res.stdout)
	}
}

func TestUnknownFormat(t *testing.T) {
	res := run(t, nil, "init", "--dir", t.TempDir(), "--format", "toml")
	if res.code != 1 || !strings.Contains(res.stderr, "unknown format") {
		t.Fatalf("expected format error, got %d:\n%s", res.code, res.stderr)
	}
}
