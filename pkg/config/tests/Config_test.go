package configtests

import "reflect"
import "testing"
import "time"

import "github.com/sirgallo/rdoc/pkg/config"


func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestDirectoryDefaults(t *testing.T) {
	cfg, loadErr := config.LoadDirectoryConfig("directory", []string{}, envOf(nil))
	if loadErr != nil { t.Fatalf("load failed: %s\n", loadErr.Error()) }

	t.Logf("actual: %+v\n", cfg)
	if cfg.Port != 1200 || cfg.EventsPort != 1201 || cfg.HTTPOffset != 10000 || cfg.Host != "127.0.0.1" { t.Errorf("defaults actual(%+v)\n", cfg) }
	if ! reflect.DeepEqual(cfg.Peers, []int{ 1300, 1400, 1500, 1600, 1700 }) { t.Errorf("peers actual(%v)\n", cfg.Peers) }
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	env := envOf(map[string]string{ config.PeersEnv: "2000,2100", config.RedisAddrEnv: "localhost:6379", config.DirectoryPortEnv: "nope" })

	cfg, loadErr := config.LoadDirectoryConfig("directory", []string{ "-peers", "3000" }, env)
	if loadErr != nil { t.Fatalf("load failed: %s\n", loadErr.Error()) }

	if ! reflect.DeepEqual(cfg.Peers, []int{ 3000 }) { t.Errorf("peers actual(%v), expected([3000])\n", cfg.Peers) }
	if cfg.RedisAddr != "localhost:6379" { t.Errorf("redis actual(%s), expected(localhost:6379)\n", cfg.RedisAddr) }
	if cfg.Port != 1200 { t.Errorf("malformed env should fall back, actual(%d)\n", cfg.Port) }

	_, badErr := config.LoadDirectoryConfig("directory", []string{ "-peers", "1300,1300" }, envOf(nil))
	if badErr == nil { t.Errorf("duplicate peers should be rejected\n") }
}

func TestReplicaConfig(t *testing.T) {
	_, missingErr := config.LoadReplicaConfig("replica", []string{}, envOf(nil))
	if missingErr == nil { t.Errorf("missing port should be rejected\n") }

	env := envOf(map[string]string{ config.PortEnv: "1300", config.PollIntervalEnv: "250ms" })
	cfg, loadErr := config.LoadReplicaConfig("replica", []string{ "-rpc-timeout", "5s" }, env)
	if loadErr != nil { t.Fatalf("load failed: %s\n", loadErr.Error()) }

	t.Logf("actual: %+v\n", cfg)
	if cfg.Port != 1300 || cfg.PollInterval != 250 * time.Millisecond || cfg.RPCTimeout != 5 * time.Second || cfg.PollAttempts != 3 {
		t.Errorf("replica config actual(%+v)\n", cfg)
	}

	if cfg.DirectoryAddr != config.DefaultDirectoryAddr { t.Errorf("directory addr actual(%s)\n", cfg.DirectoryAddr) }
}
