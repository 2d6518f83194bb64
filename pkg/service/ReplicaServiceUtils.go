package service

import "context"

import "github.com/sirgallo/rdoc/pkg/stats"


func (svc *ReplicaService) InitStats() error {
	initStatObj, calcErr := stats.CalculateStats(svc.Replica.DataDir)
	if calcErr != nil {
		svc.Log.Error("unable to calculate stats for path", calcErr.Error())
		return calcErr
	}

	svc.Log.Info("data directory stats:", initStatObj.String())
	return nil
}

func (svc *ReplicaService) forward(serveErr <-chan error) {
	defer svc.forwarders.Done()

	for err := range serveErr {
		if err == nil { continue }

		select {
			case svc.errors <- err:
			default:
				svc.Log.Error("dropping serve error:", err.Error())
		}
	}
}

// graceful stop, forced once the context is done
func (svc *ReplicaService) stopGRPC(ctx context.Context) {
	stopped := make(chan struct{})
	go func() {
		svc.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
		case <-stopped:
		case <-ctx.Done():
			svc.grpcServer.Stop()
	}
}
