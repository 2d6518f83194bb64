package main

import "bufio"
import "context"
import "fmt"
import "os"
import "strconv"
import "strings"
import "time"

import "github.com/sirgallo/rdoc/pkg/config"
import "github.com/sirgallo/rdoc/pkg/connpool"
import "github.com/sirgallo/rdoc/pkg/directory"
import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/system"


const NAME = "Admin"
var Log = clog.NewCustomLog(NAME)

const CommandTimeout = 2 * time.Minute

const usage = `commands:
  kill <port>      stop a replica and mark it DEAD
  restart <port>   restart a DEAD replica and recover it from an EMPTY peer
  status           show every peer's status
  assign           ask for an idle peer
  quit`


/*
	admin console:
		reads one command per line from stdin and sends it to the directory service
*/

func main() {
	cfg, cfgErr := config.LoadAdminConfig(os.Args[0], os.Args[1:], os.Getenv)
	if cfgErr != nil { Log.Fatal("invalid configuration:", cfgErr.Error()) }

	pool := connpool.NewConnectionPool(connpool.ConnectionPoolOpts{ MaxConn: 1 })
	defer pool.CloseAll()

	client := directory.NewClient(cfg.DirectoryAddr, pool)

	fmt.Println(usage)
	scanner := bufio.NewScanner(os.Stdin)

	for fmt.Print("> "); scanner.Scan(); fmt.Print("> ") {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 { continue }
		if fields[0] == "quit" || fields[0] == "exit" { return }

		out, runErr := run(client, fields)
		if runErr != nil {
			fmt.Println("error:", runErr.Error())
			continue
		}

		fmt.Println(out)
	}
}

func run(client *directory.Client, fields []string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), CommandTimeout)
	defer cancel()

	switch fields[0] {
		case "kill", "restart":
			if len(fields) != 2 { return "", fmt.Errorf("usage: %s <port>", fields[0]) }

			port, convErr := strconv.Atoi(fields[1])
			if convErr != nil { return "", convErr }

			if fields[0] == "kill" { return client.KillPeer(ctx, port) }
			return client.RestartPeer(ctx, port)
		case "status":
			entries, listErr := client.ListStatuses(ctx)
			if listErr != nil { return "", listErr }

			lines := make([]string, len(entries))
			for idx, entry := range entries {
				lines[idx] = fmt.Sprintf("%s\t%s", system.ServerName(entry.Port), system.PeerStatus(entry.Status).String())
			}

			return strings.Join(lines, "\n"), nil
		case "assign":
			port, assignErr := client.AssignIdlePeer(ctx)
			if assignErr != nil { return "", assignErr }

			return "assigned " + system.ServerName(port), nil
		default:
			return "", fmt.Errorf("unknown command %q\n%s", fields[0], usage)
	}
}
