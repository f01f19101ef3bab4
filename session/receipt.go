package session

// receiptTable tracks outstanding receipt ids awaiting resolution by an
// inbound RECEIPT or ERROR frame, or cancellation on disconnected().
// Grounded on mschneider82-stomp/server/client.Conn.sendReceiptImmediately
// run in reverse: that method is the receipt *responder* (strips
// "receipt", emits RECEIPT); this table belongs to the receipt
// *requester* and resolves entries as frames arrive, per spec §4.3 and
// §5's "abandons pending receipts" cancellation rule.
type receiptTable struct {
	pending map[string]interface{}
}

func newReceiptTable() *receiptTable {
	return &receiptTable{pending: map[string]interface{}{}}
}

func (t *receiptTable) register(id string, token interface{}) {
	t.pending[id] = token
}

// resolve removes and returns the token registered for id, if any.
func (t *receiptTable) resolve(id string) (interface{}, bool) {
	token, ok := t.pending[id]
	if ok {
		delete(t.pending, id)
	}
	return token, ok
}

// cancelAll empties the table, returning every still-pending token in no
// particular order, for disconnected()'s RECEIPT_CANCELLED fan-out.
func (t *receiptTable) cancelAll() []interface{} {
	tokens := make([]interface{}, 0, len(t.pending))
	for id, token := range t.pending {
		tokens = append(tokens, token)
		delete(t.pending, id)
	}
	return tokens
}
