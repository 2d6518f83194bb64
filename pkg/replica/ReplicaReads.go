package replica

import "context"
import "strconv"
import "strings"

import "github.com/sirgallo/rdoc/pkg/docrpc"
import "github.com/sirgallo/rdoc/pkg/txn"


//=========================================== Read Operations


/*
	reads bypass the protocol entirely and may run alongside an in flight transaction
*/

func (r *Replica) ShowSection(ctx context.Context, req *docrpc.SectionRequest) (*txn.Result, error) {
	failure := r.checkSession(req.Username, req.Token)
	if failure != nil { return failure, nil }

	_, section, failure := r.lookupSection(req.Username, req.DocName, req.SectionIndex)
	if failure != nil { return failure, nil }

	occupant, occupied := section.Occupant()
	if occupied {
		r.Log.Debug("SHOW_SECTION: SUCCESS")
		return &txn.Result{ Code: txn.OK, Message: occupant, Occupant: occupant }, nil
	}

	content, readErr := r.Documents.ReadSection(section)
	if readErr != nil { return txn.Failure(txn.Internal, txn.MsgSectionAccess), nil }

	r.Log.Debug("SHOW_SECTION: SUCCESS")
	return &txn.Result{ Code: txn.OK, Message: txn.MsgNone, Content: content }, nil
}

func (r *Replica) ShowDocumentContent(ctx context.Context, req *docrpc.DocumentRequest) (*txn.Result, error) {
	failure := r.checkSession(req.Username, req.Token)
	if failure != nil { return failure, nil }

	doc, failure := r.lookupDocument(req.Username, req.DocName)
	if failure != nil { return failure, nil }

	content, readErr := r.Documents.ReadDocument(doc)
	if readErr != nil { return txn.Failure(txn.Internal, txn.MsgSectionAccess), nil }

	occupied := doc.OccupiedSections()
	indexes := make([]string, len(occupied))
	for idx, sectionIdx := range occupied { indexes[idx] = strconv.Itoa(sectionIdx) }

	r.Log.Debug("SHOW_DOCUMENT_CONTENT: SUCCESS")
	return &txn.Result{
		Code: txn.OK,
		Message: strings.Join(indexes, ","),
		OccupiedSections: occupied,
		Content: content,
	}, nil
}

func (r *Replica) ListOwnedDocs(ctx context.Context, req *docrpc.UserRequest) (*txn.Result, error) {
	failure := r.checkSession(req.Username, req.Token)
	if failure != nil { return failure, nil }

	names := r.Documents.NamesFor(req.Username)

	r.Log.Debug("LIST: SUCCESS")
	if len(names) == 0 { return &txn.Result{ Code: txn.OK, Message: txn.MsgNone, DocNames: []string{} }, nil }

	return &txn.Result{ Code: txn.OK, Message: strings.Join(names, ","), DocNames: names }, nil
}
