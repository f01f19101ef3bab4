package session

import (
	"github.com/go-stomp/corestomp/command"
	"github.com/go-stomp/corestomp/frame"
	"github.com/go-stomp/corestomp/stomperr"
)

// Begin opens a transaction, generating a transaction id if id is
// empty, and returns the BEGIN frame to send.
func (s *Session) Begin(id, receipt string) (*frame.Frame, string, error) {
	if s.phase != Connected {
		return nil, "", s.stateError("begin")
	}
	if id == "" {
		id = s.txIDs.Next()
	}
	f, err := command.Begin(id, receipt)
	if err != nil {
		return nil, "", err
	}
	s.transactions[id] = struct{}{}
	if receipt != "" {
		s.receipts.register(receipt, nil)
	}
	return f, id, nil
}

// Commit closes transaction id and returns the COMMIT frame to send.
// Committing an unknown id fails with UNKNOWN_TRANSACTION.
func (s *Session) Commit(id, receipt string) (*frame.Frame, error) {
	return s.endTransaction(command.Commit, id, receipt)
}

// Abort closes transaction id and returns the ABORT frame to send.
// Aborting an unknown id fails with UNKNOWN_TRANSACTION.
func (s *Session) Abort(id, receipt string) (*frame.Frame, error) {
	return s.endTransaction(command.Abort, id, receipt)
}

func (s *Session) endTransaction(build func(string, string) (*frame.Frame, error), id, receipt string) (*frame.Frame, error) {
	if s.phase != Connected {
		return nil, s.stateError("end transaction")
	}
	if _, ok := s.transactions[id]; !ok {
		return nil, stomperr.New(stomperr.KindUnknownTransaction, "no transaction with id \""+id+"\"")
	}
	f, err := build(id, receipt)
	if err != nil {
		return nil, err
	}
	delete(s.transactions, id)
	if receipt != "" {
		s.receipts.register(receipt, nil)
	}
	return f, nil
}
