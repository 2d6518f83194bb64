package dirrpc


type AssignRequest struct{}

type AssignResponse struct {
	Port int
}

type StatusRequest struct {
	Port int
}

type StatusResponse struct {
	Port int
	Status int
}

type SetStatusRequest struct {
	Port int
	Status int
}

type SetStatusResponse struct {
	Success bool
}

type PeersRequest struct {
	ExcludingPort int
}

type PeersResponse struct {
	Ports []int
}

type NotifyRequest struct {
	Message string
}

type NotifyResponse struct{}

type PeerRequest struct {
	Port int
}

type PeerResponse struct {
	Success bool
	Message string
}

type ListStatusesRequest struct{}

type PeerStatusEntry struct {
	Port int
	Status int
}

type ListStatusesResponse struct {
	Statuses []PeerStatusEntry
}

const ServiceName = "dirrpc.DirectoryService"
