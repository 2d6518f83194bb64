package directory

import "context"
import "fmt"

import "github.com/sirgallo/rdoc/pkg/system"
import "github.com/sirgallo/rdoc/pkg/utils"


//=========================================== Directory Admin


/*
	Kill Peer:
		stop the replica process if a launcher is configured and force the status to DEAD
*/

func (d *Directory) KillPeer(ctx context.Context, port int) error {
	_, ok := d.peers[port]
	if ! ok { return fmt.Errorf("%w: %d", ErrUnknownPeer, port) }

	if d.Launcher != nil {
		shutdownErr := d.Launcher.Shutdown(port)
		if shutdownErr != nil { d.Log.Warn("error shutting down", system.ServerName(port), ":", shutdownErr.Error()) }
	}

	setErr := d.SetStatus(ctx, port, system.Dead)
	if setErr != nil { return setErr }

	d.Log.Info(system.ServerName(port), "killed")
	return nil
}

/*
	Restart Peer:
		1.) only a DEAD peer is restarted
		2.) start a fresh, empty replica bound to the port, it stays DEAD until recovered
		3.) ask an EMPTY peer to help it recover, trying each EMPTY peer in port order with backoff between rounds
		4.) on success the peer is EMPTY again, on failure it stays DEAD and the restart can be retried
*/

func (d *Directory) RestartPeer(ctx context.Context, port int) error {
	d.restartMutex.Lock()
	defer d.restartMutex.Unlock()

	status, statusErr := d.GetStatus(ctx, port)
	if statusErr != nil { return statusErr }
	if status != system.Dead { return fmt.Errorf("%w: %s is %s", ErrNotDead, system.ServerName(port), status.String()) }

	if d.Launcher != nil {
		d.Launcher.Shutdown(port)

		launchErr := d.Launcher.Launch(port)
		if launchErr != nil { return launchErr }
	}

	if d.Helper == nil { return ErrNoHelper }

	maxRetries := HelperAttempts
	strat := utils.NewExponentialBackoffStrat[int](utils.ExpBackoffOpts{ MaxRetries: &maxRetries, TimeoutInMilliseconds: 200 })

	helperPort, recoverErr := strat.PerformBackoff(func() (int, error) { return d.recoverFromAnyHelper(ctx, port) })
	if recoverErr != nil {
		d.Log.Error("recovery of", system.ServerName(port), "failed:", recoverErr.Error())
		return recoverErr
	}

	setErr := d.SetStatus(ctx, port, system.Empty)
	if setErr != nil { return setErr }

	d.Log.Info(system.ServerName(port), "restarted and recovered from", system.ServerName(helperPort))
	return nil
}

func (d *Directory) recoverFromAnyHelper(ctx context.Context, target int) (int, error) {
	lastErr := ErrNoHelper

	for _, port := range d.ports {
		if port == target || d.peers[port].GetStatus() != system.Empty { continue }

		helpErr := d.Helper.HelpRecoverData(ctx, port, target)
		if helpErr == nil { return port, nil }

		d.Log.Warn(system.ServerName(port), "could not help recover", system.ServerName(target), ":", helpErr.Error())
		lastErr = helpErr
	}

	return 0, lastErr
}
