package httpservice

import "encoding/json"
import "net/http"
import "strconv"

import "github.com/gorilla/mux"

import "github.com/sirgallo/rdoc/pkg/docrpc"
import "github.com/sirgallo/rdoc/pkg/txn"


//=========================================== HTTP Service Handlers


/*
	Register Routes
		POST   /users                                      {username, password}  --> create user
		POST   /sessions                                   {username, password}  --> login
		DELETE /sessions                                                         --> logout
		GET    /documents                                                        --> list owned documents
		POST   /documents                                  {name, sections}      --> create document
		GET    /documents/{doc}                                                  --> show document content
		POST   /documents/{doc}/share                      {target}              --> share document
		GET    /documents/{doc}/sections/{index}                                 --> show section
		POST   /documents/{doc}/sections/{index}/edit                            --> start editing
		POST   /documents/{doc}/sections/{index}/edit-end  {content}             --> upload and release
		GET    /notifications                                                    --> drain notifications

	authenticated routes read the caller from the X-Username and X-Token headers
*/

func (httpService *HTTPService) RegisterRoutes() {
	r := httpService.Router

	r.HandleFunc("/users", httpService.handleCreateUser).Methods(http.MethodPost)
	r.HandleFunc("/sessions", httpService.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/sessions", httpService.handleLogout).Methods(http.MethodDelete)
	r.HandleFunc("/documents", httpService.handleListOwnedDocs).Methods(http.MethodGet)
	r.HandleFunc("/documents", httpService.handleCreateDocument).Methods(http.MethodPost)
	r.HandleFunc("/documents/{doc}", httpService.handleShowDocumentContent).Methods(http.MethodGet)
	r.HandleFunc("/documents/{doc}/share", httpService.handleShareDoc).Methods(http.MethodPost)
	r.HandleFunc("/documents/{doc}/sections/{index:[0-9]+}", httpService.handleShowSection).Methods(http.MethodGet)
	r.HandleFunc("/documents/{doc}/sections/{index:[0-9]+}/edit", httpService.handleEdit).Methods(http.MethodPost)
	r.HandleFunc("/documents/{doc}/sections/{index:[0-9]+}/edit-end", httpService.handleEditEnd).Methods(http.MethodPost)
	r.HandleFunc("/notifications", httpService.handleGetNotifications).Methods(http.MethodGet)

	r.Use(httpService.requestIDMiddleware)
}

func (httpService *HTTPService) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if ! httpService.decode(w, r, &body) { return }

	res, opErr := httpService.Operations.CreateUser(r.Context(), &docrpc.CreateUserRequest{ Username: body.Username, Password: body.Password })
	httpService.respond(w, r, res, opErr)
}

func (httpService *HTTPService) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if ! httpService.decode(w, r, &body) { return }

	res, opErr := httpService.Operations.Login(r.Context(), &docrpc.LoginRequest{ Username: body.Username, Password: body.Password })
	httpService.respond(w, r, res, opErr)
}

func (httpService *HTTPService) handleLogout(w http.ResponseWriter, r *http.Request) {
	res, opErr := httpService.Operations.Logout(r.Context(), userRequest(r))
	httpService.respond(w, r, res, opErr)
}

func (httpService *HTTPService) handleListOwnedDocs(w http.ResponseWriter, r *http.Request) {
	res, opErr := httpService.Operations.ListOwnedDocs(r.Context(), userRequest(r))
	httpService.respond(w, r, res, opErr)
}

func (httpService *HTTPService) handleGetNotifications(w http.ResponseWriter, r *http.Request) {
	res, opErr := httpService.Operations.GetNotifications(r.Context(), userRequest(r))
	httpService.respond(w, r, res, opErr)
}

func (httpService *HTTPService) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var body createDocumentBody
	if ! httpService.decode(w, r, &body) { return }

	caller := userRequest(r)
	res, opErr := httpService.Operations.CreateDocument(r.Context(), &docrpc.CreateDocumentRequest{
		Username: caller.Username,
		Token: caller.Token,
		DocName: body.Name,
		SectionCount: body.Sections,
	})

	httpService.respond(w, r, res, opErr)
}

func (httpService *HTTPService) handleShowDocumentContent(w http.ResponseWriter, r *http.Request) {
	caller := userRequest(r)
	res, opErr := httpService.Operations.ShowDocumentContent(r.Context(), &docrpc.DocumentRequest{
		Username: caller.Username,
		Token: caller.Token,
		DocName: mux.Vars(r)["doc"],
	})

	httpService.respond(w, r, res, opErr)
}

func (httpService *HTTPService) handleShareDoc(w http.ResponseWriter, r *http.Request) {
	var body shareBody
	if ! httpService.decode(w, r, &body) { return }

	caller := userRequest(r)
	res, opErr := httpService.Operations.ShareDoc(r.Context(), &docrpc.ShareRequest{
		Username: caller.Username,
		Token: caller.Token,
		DocName: mux.Vars(r)["doc"],
		TargetUser: body.Target,
	})

	httpService.respond(w, r, res, opErr)
}

func (httpService *HTTPService) handleShowSection(w http.ResponseWriter, r *http.Request) {
	req, ok := sectionRequest(w, r)
	if ! ok { return }

	res, opErr := httpService.Operations.ShowSection(r.Context(), req)
	httpService.respond(w, r, res, opErr)
}

func (httpService *HTTPService) handleEdit(w http.ResponseWriter, r *http.Request) {
	req, ok := sectionRequest(w, r)
	if ! ok { return }

	res, opErr := httpService.Operations.Edit(r.Context(), req)
	httpService.respond(w, r, res, opErr)
}

func (httpService *HTTPService) handleEditEnd(w http.ResponseWriter, r *http.Request) {
	req, ok := sectionRequest(w, r)
	if ! ok { return }

	var body editEndBody
	if ! httpService.decode(w, r, &body) { return }

	res, opErr := httpService.Operations.EditEnd(r.Context(), &docrpc.EditEndRequest{
		Username: req.Username,
		Token: req.Token,
		DocName: req.DocName,
		SectionIndex: req.SectionIndex,
		Content: []byte(body.Content),
	})

	httpService.respond(w, r, res, opErr)
}

func userRequest(r *http.Request) *docrpc.UserRequest {
	return &docrpc.UserRequest{ Username: r.Header.Get(UsernameHeader), Token: r.Header.Get(TokenHeader) }
}

func sectionRequest(w http.ResponseWriter, r *http.Request) (*docrpc.SectionRequest, bool) {
	vars := mux.Vars(r)

	index, convErr := strconv.Atoi(vars["index"])
	if convErr != nil {
		http.Error(w, "invalid section index", http.StatusBadRequest)
		return nil, false
	}

	caller := userRequest(r)
	return &docrpc.SectionRequest{ Username: caller.Username, Token: caller.Token, DocName: vars["doc"], SectionIndex: index }, true
}

func (httpService *HTTPService) decode(w http.ResponseWriter, r *http.Request, body interface{}) bool {
	decodeErr := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(body)
	if decodeErr != nil {
		http.Error(w, "failed to parse JSON request body", http.StatusBadRequest)
		return false
	}

	return true
}

/*
	respond:
		an operation error is a 500, otherwise the result code picks the http status and the result is
		written as json alongside the request id
*/

func (httpService *HTTPService) respond(w http.ResponseWriter, r *http.Request, res *txn.Result, opErr error) {
	requestID := w.Header().Get(RequestIDHeader)

	if opErr != nil {
		httpService.Log.Error("request", requestID, "failed:", opErr.Error())
		http.Error(w, opErr.Error(), http.StatusInternalServerError)
		return
	}

	responseJSON, encErr := json.Marshal(toResponseBody(requestID, res))
	if encErr != nil {
		http.Error(w, "failed to encode JSON response", http.StatusInternalServerError)
		return
	}

	httpService.Log.Debug(r.Method, r.URL.Path, requestID, string(res.Code))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(res.Code))
	w.Write(responseJSON)
}
