package config

import "errors"
import "flag"
import "fmt"

import "github.com/sirgallo/rdoc/pkg/directory"
import "github.com/sirgallo/rdoc/pkg/replica"


//=========================================== Config


/*
	every setting is a command line flag whose default comes from the environment, falling back to the
	built in default when the variable is unset or malformed
*/

func LoadDirectoryConfig(name string, args []string, getenv func(string) string) (*DirectoryConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	env := environment{ getenv: getenv }

	cfg := &DirectoryConfig{}
	var rawPeers string

	fs.StringVar(&cfg.Host, "host", env.str(HostEnv, DefaultHost), "host every process binds to")
	fs.IntVar(&cfg.Port, "port", env.integer(DirectoryPortEnv, DefaultDirectoryPort), "directory service grpc port")
	fs.StringVar(&rawPeers, "peers", env.str(PeersEnv, DefaultPeers), "comma separated replica ports")
	fs.StringVar(&cfg.DataDir, "data", env.str(DataDirEnv, DefaultDataDir), "base directory holding each replica's data directory")
	fs.IntVar(&cfg.EventsPort, "events-port", env.integer(EventsPortEnv, DefaultEventsPort), "http port of the event feed, 0 disables")
	fs.StringVar(&cfg.RedisAddr, "redis", env.str(RedisAddrEnv, ""), "redis address for publishing events, empty disables")
	fs.IntVar(&cfg.HTTPOffset, "http-offset", env.integer(HTTPOffsetEnv, DefaultHTTPOffset), "replica http gateway port offset, 0 disables")

	parseErr := fs.Parse(args)
	if parseErr != nil { return nil, parseErr }

	peers, peersErr := directory.ParsePorts(rawPeers)
	if peersErr != nil { return nil, fmt.Errorf("invalid peers: %w", peersErr) }

	cfg.Peers = peers
	return cfg, nil
}

func LoadReplicaConfig(name string, args []string, getenv func(string) string) (*ReplicaConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	env := environment{ getenv: getenv }

	cfg := &ReplicaConfig{}

	fs.StringVar(&cfg.Host, "host", env.str(HostEnv, DefaultHost), "host the replica binds to")
	fs.IntVar(&cfg.Port, "port", env.integer(PortEnv, 0), "replica grpc port")
	fs.StringVar(&cfg.DirectoryAddr, "directory", env.str(DirectoryAddrEnv, DefaultDirectoryAddr), "directory service address")
	fs.StringVar(&cfg.DataDir, "data", env.str(DataDirEnv, DefaultDataDir), "base directory holding the replica's data directory")
	fs.IntVar(&cfg.HTTPPort, "http-port", env.integer(HTTPPortEnv, 0), "http gateway port, 0 disables")
	fs.IntVar(&cfg.PollAttempts, "poll-attempts", env.integer(PollAttemptsEnv, replica.DefaultPollAttempts), "vote and ack poll attempts")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", env.duration(PollIntervalEnv, replica.DefaultPollInterval), "wait between polls")
	fs.DurationVar(&cfg.RPCTimeout, "rpc-timeout", env.duration(RPCTimeoutEnv, replica.DefaultRPCTimeout), "timeout of a single peer rpc")

	parseErr := fs.Parse(args)
	if parseErr != nil { return nil, parseErr }

	if cfg.Port <= 0 { return nil, errors.New("a replica port is required (-port or " + PortEnv + ")") }
	return cfg, nil
}

func LoadAdminConfig(name string, args []string, getenv func(string) string) (*AdminConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	env := environment{ getenv: getenv }

	cfg := &AdminConfig{}
	fs.StringVar(&cfg.DirectoryAddr, "directory", env.str(DirectoryAddrEnv, DefaultDirectoryAddr), "directory service address")

	parseErr := fs.Parse(args)
	if parseErr != nil { return nil, parseErr }

	return cfg, nil
}
