package httpservice

import "context"
import "net/http"
import "time"

import "github.com/gorilla/mux"

import "github.com/sirgallo/rdoc/pkg/docrpc"
import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/txn"


// the client facing operations of one replica
type Operations interface {
	CreateUser(ctx context.Context, req *docrpc.CreateUserRequest) (*txn.Result, error)
	Login(ctx context.Context, req *docrpc.LoginRequest) (*txn.Result, error)
	Logout(ctx context.Context, req *docrpc.UserRequest) (*txn.Result, error)
	CreateDocument(ctx context.Context, req *docrpc.CreateDocumentRequest) (*txn.Result, error)
	Edit(ctx context.Context, req *docrpc.SectionRequest) (*txn.Result, error)
	EditEnd(ctx context.Context, req *docrpc.EditEndRequest) (*txn.Result, error)
	ShowSection(ctx context.Context, req *docrpc.SectionRequest) (*txn.Result, error)
	ShowDocumentContent(ctx context.Context, req *docrpc.DocumentRequest) (*txn.Result, error)
	ListOwnedDocs(ctx context.Context, req *docrpc.UserRequest) (*txn.Result, error)
	ShareDoc(ctx context.Context, req *docrpc.ShareRequest) (*txn.Result, error)
	GetNotifications(ctx context.Context, req *docrpc.UserRequest) (*txn.Result, error)
}

type HTTPServiceOpts struct {
	Port int
	Operations Operations
}

type HTTPService struct {
	Router *mux.Router
	Port string
	Operations Operations

	server *http.Server

	Log clog.CustomLog
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createDocumentBody struct {
	Name string `json:"name"`
	Sections int `json:"sections"`
}

type editEndBody struct {
	Content string `json:"content"`
}

type shareBody struct {
	Target string `json:"target"`
}

// txn.Result with content rendered as text
type responseBody struct {
	RequestID string `json:"requestId"`
	Code txn.Code `json:"code"`
	Message string `json:"message"`

	Token string `json:"token,omitempty"`
	ChatAddress string `json:"chatAddress,omitempty"`
	Occupant string `json:"occupant,omitempty"`
	OccupiedSections []int `json:"occupiedSections,omitempty"`
	DocNames []string `json:"docNames,omitempty"`
	Notifications []string `json:"notifications,omitempty"`
	Content *string `json:"content,omitempty"`
}


const NAME = "HTTP Service"

const (
	UsernameHeader = "X-Username"
	TokenHeader = "X-Token"
	RequestIDHeader = "X-Request-ID"
)

const (
	HTTPTimeout = 30 * time.Second
	MaxBodyBytes = 32 << 20
)
