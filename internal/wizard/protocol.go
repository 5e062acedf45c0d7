package wizard

import (
	"github.com/zedbee/gateway-wizard/internal/rows"
	"github.com/zedbee/gateway-wizard/internal/store"
)

// ProtocolView identifies the visible protocol sub-view.
type ProtocolView string

const (
	// ProtocolViewSelect is the RTU/TCP chooser.
	ProtocolViewSelect ProtocolView = "select"
	// ProtocolViewRTU shows the RTU table editor.
	ProtocolViewRTU ProtocolView = "rtu"
	// ProtocolViewTCP shows the TCP table editor.
	ProtocolViewTCP ProtocolView = "tcp"
)

// ProtocolWizard drives the protocol section: two independent row-table
// sub-flows that coexist. Saving one table records it as the authoritative
// mode for summaries, but both row sets persist regardless of mode.
type ProtocolWizard struct {
	store *store.Store

	// RTU and TCP are the two table editors, exposed directly so views can
	// edit rows in place.
	RTU *rows.RtuEditor
	TCP *rows.TcpEditor

	view ProtocolView
}

// NewProtocolWizard creates the controller over the saved row sets. Empty
// saved tables are seeded with exactly one blank default row so the user
// never sees a zero-row table, even though zero rows is a valid saved
// state.
func NewProtocolWizard(s *store.Store) *ProtocolWizard {
	proto := s.Config().Protocol

	w := &ProtocolWizard{
		store: s,
		RTU:   rows.NewRtuEditor(proto.RtuRows),
		TCP:   rows.NewTcpEditor(proto.TcpRows),
		view:  ProtocolViewSelect,
	}
	if w.RTU.Len() == 0 {
		w.RTU.Add()
	}
	if w.TCP.Len() == 0 {
		w.TCP.Add()
	}
	return w
}

// View returns the active sub-view.
func (w *ProtocolWizard) View() ProtocolView { return w.view }

// Show switches the active sub-view.
func (w *ProtocolWizard) Show(view ProtocolView) {
	switch view {
	case ProtocolViewRTU, ProtocolViewTCP:
		w.view = view
	default:
		w.view = ProtocolViewSelect
	}
}

// SaveRTU validates every RTU row and commits the table as a whole. Any
// invalid row rejects the save and surfaces the first failure.
func (w *ProtocolWizard) SaveRTU() error {
	saved, err := w.RTU.Save()
	if err != nil {
		return err
	}
	return w.store.UpdateProtocolRTU(saved)
}

// SaveTCP validates every TCP row and commits the table as a whole.
func (w *ProtocolWizard) SaveTCP() error {
	saved, err := w.TCP.Save()
	if err != nil {
		return err
	}
	return w.store.UpdateProtocolTCP(saved)
}
