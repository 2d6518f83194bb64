package replica

import "fmt"
import "path/filepath"
import "strconv"

import "github.com/sirgallo/rdoc/pkg/docdb"
import "github.com/sirgallo/rdoc/pkg/system"
import "github.com/sirgallo/rdoc/pkg/txn"
import "github.com/sirgallo/rdoc/pkg/utils"


func DataDirFor(base string, port int) string {
	return filepath.Join(base, DataDirPrefix + strconv.Itoa(port))
}

/*
	Decide:
		commit only if every responding peer voted yes and at least half of the peers (floor) responded
*/

func Decide(numPeers int, responded int, yes int) bool {
	return yes == responded && responded >= numPeers / 2
}

func Tally(votes map[int]bool) (int, int) {
	yes := 0
	for _, vote := range votes {
		if vote { yes++ }
	}

	return len(votes), yes
}

func missingPeers(peers []int, responses map[int]bool) []int {
	return utils.Filter[int](peers, func(port int) bool {
		_, ok := responses[port]
		return ! ok
	})
}

/*
	check session:
		the user must be logged in and the token must be the one issued at login
*/

func (r *Replica) checkSession(username string, token string) *txn.Result {
	if ! r.Sessions.IsLoggedIn(username) { return txn.Failure(txn.NotLoggedIn, txn.MsgNotLoggedIn) }
	if ! r.Sessions.Matches(username, token) { return txn.Failure(txn.TokenMismatch, txn.MsgTokenMismatch) }

	return nil
}

/*
	lookup section:
		document exists --> caller has access --> section exists
*/

func (r *Replica) lookupSection(username string, docName string, index int) (*docdb.Document, *docdb.Section, *txn.Result) {
	doc, failure := r.lookupDocument(username, docName)
	if failure != nil { return nil, nil, failure }

	section, ok := doc.Section(index)
	if ! ok { return nil, nil, txn.Failure(txn.SectionNotFound, txn.MsgSectionNotFound) }

	return doc, section, nil
}

func (r *Replica) lookupDocument(username string, docName string) (*docdb.Document, *txn.Result) {
	doc, ok := r.Documents.Get(docName)
	if ! ok { return nil, txn.Failure(txn.DocumentNotFound, txn.MsgDocumentNotFound) }
	if ! doc.HasPermit(username) { return nil, txn.Failure(txn.NoPermission, txn.MsgNoPermission) }

	return doc, nil
}

func shareNotification(user string, docName string) string {
	return fmt.Sprintf("%s shared %s with you", user, docName)
}

func downNotice(port int) string {
	return system.ServerName(port) + " is down!"
}
