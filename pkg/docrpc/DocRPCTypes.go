package docrpc

import "github.com/sirgallo/rdoc/pkg/txn"


//=========================================== Client Facing Requests


type CreateUserRequest struct {
	Username string
	Password string
}

type LoginRequest struct {
	Username string
	Password string
}

type UserRequest struct {
	Username string
	Token string
}

type CreateDocumentRequest struct {
	Username string
	Token string
	DocName string
	SectionCount int
}

type SectionRequest struct {
	Username string
	Token string
	DocName string
	SectionIndex int
}

type EditEndRequest struct {
	Username string
	Token string
	DocName string
	SectionIndex int
	Content []byte
}

type DocumentRequest struct {
	Username string
	Token string
	DocName string
}

type ShareRequest struct {
	Username string
	Token string
	DocName string
	TargetUser string
}


//=========================================== Protocol Requests


type PrepareRequest struct {
	TxID string
	CoordinatorPort int
	Txn txn.Transaction
}

type VoteResponse struct {
	Port int
	Vote bool
}

type DecisionRequest struct {
	TxID string
	CoordinatorPort int
}

type AckResponse struct {
	Port int
	Ack bool
}

type HelpRecoverRequest struct {
	TargetPort int
}

type RecoverResponse struct {
	Success bool
	Message string
}

const ServiceName = "docrpc.ReplicaService"
