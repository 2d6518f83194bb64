package txn


type Op string

const (
	CreateUser Op = "CREATE_USER"
	Login Op = "LOGIN"
	Logout Op = "LOGOUT"
	Edit Op = "EDIT"
	EditEnd Op = "EDIT_END"
	CreateDocument Op = "CREATE_DOCUMENT"
	Share Op = "SHARE"
	GetNotifications Op = "GET_NOTIFICATIONS"
)

/*
	Transaction
		an immutable description of one replicated state change

		only scalar fields and byte payloads cross the wire, every replica resolves names against its own tables
		when the transaction is applied
*/

type Transaction struct {
	ID string
	Op Op
	User string

	PasswordDigest string
	Token string
	DocName string
	SectionIndex int
	SectionCount int
	Content []byte
	TargetUser string
	ChatAddress uint32
	NotificationCount int
}

type Code string

const (
	OK Code = "OK"
	NotLoggedIn Code = "NOT_LOGGED_IN"
	TokenMismatch Code = "TOKEN_MISMATCH"
	AlreadyLoggedIn Code = "ALREADY_LOGGED_IN"
	InvalidCredentials Code = "INVALID_CREDENTIALS"
	UsernameTaken Code = "USERNAME_TAKEN"
	DocumentNotFound Code = "DOCUMENT_NOT_FOUND"
	DocumentExists Code = "DOCUMENT_EXISTS"
	SectionNotFound Code = "SECTION_NOT_FOUND"
	NoPermission Code = "NO_PERMISSION"
	SectionBusy Code = "SECTION_BUSY"
	NotEditing Code = "NOT_EDITING"
	TargetNotFound Code = "TARGET_NOT_FOUND"
	InvalidRequest Code = "INVALID_REQUEST"
	Aborted Code = "ABORTED"
	Internal Code = "INTERNAL"
)

type Result struct {
	Code Code `json:"code"`
	Message string `json:"message"`

	Token string `json:"token,omitempty"`
	ChatAddress string `json:"chatAddress,omitempty"`
	Occupant string `json:"occupant,omitempty"`
	OccupiedSections []int `json:"occupiedSections,omitempty"`
	DocNames []string `json:"docNames,omitempty"`
	Notifications []string `json:"notifications,omitempty"`
	Content []byte `json:"content,omitempty"`
}

const (
	MsgAborted = "Request aborted."
	MsgNotLoggedIn = "Not logged in."
	MsgTokenMismatch = "User does not match token."
	MsgAlreadyLoggedIn = "Already logged in."
	MsgInvalidCredentials = "Unregistered or password do not match."
	MsgUsernameTaken = "Username already exists"
	MsgDocumentNotFound = "Document does not exist."
	MsgDocumentExists = "Document already exists."
	MsgSectionNotFound = "Section does not exist."
	MsgNoPermission = "You do not have access."
	MsgSectionBusy = "The section is being edited"
	MsgNotEditing = "The section is being edited by other"
	MsgTargetNotFound = "The target user does not exist."
	MsgAlreadyShared = "This user already has access to this doc."
	MsgSucceed = "Succeed"
	MsgNone = "None"
	MsgSectionAccess = "Failure accessing section."
)

const NAME = "Txn"
