// Package converter provides conversions between wire messages and model types
package converter

import (
	"github.com/napolitain/buildorder/internal/order"
	"github.com/napolitain/buildorder/internal/simulation"
)

// Report is the wire shape of a validated order
type Report struct {
	MaxTime     int          `json:"max_time"`
	Final       Final        `json:"final"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Final summarizes the economy at the end of the horizon
type Final struct {
	Mineral   float64 `json:"mineral"`
	Gas       float64 `json:"gas"`
	Supply    int     `json:"supply"`
	MaxSupply int     `json:"max_supply"`
}

// Diagnostic is one violation. Index points into the creates list of the
// serialized order, or is -1 for lifts and lands.
type Diagnostic struct {
	Index  int    `json:"index"`
	Time   int    `json:"time"`
	Action string `json:"action"`
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Addon  string `json:"addon,omitempty"`
}

// QuickestRequest asks for the earliest legal time of a prospective create.
// Parent uses the save format encoding (-1 none, -2 root, else creates index).
type QuickestRequest struct {
	Order  order.Save `json:"order"`
	Unit   string     `json:"unit"`
	Parent int        `json:"parent"`
	Count  int        `json:"count,omitempty"`
}

// QuickestReply carries the answer; Possible is false when no time exists
type QuickestReply struct {
	Time     int  `json:"time"`
	Possible bool `json:"possible"`
}

// NewReport flattens a result and its analysis
func NewReport(result *simulation.Result, analysis *simulation.Analysis) Report {
	final := result.Final()
	report := Report{
		MaxTime: result.MaxTime,
		Final: Final{
			Mineral:   final.Mineral,
			Gas:       final.Gas,
			Supply:    final.Supply.Current,
			MaxSupply: final.Supply.Max,
		},
		Diagnostics: make([]Diagnostic, 0, len(analysis.Errors)),
	}

	position := make(map[order.ActionID]int)
	for i, c := range result.Order.Creates() {
		position[c.ID] = i
	}

	for _, iv := range analysis.Errors {
		index, ok := position[iv.Action.ID]
		if !ok {
			index = -1
		}
		d := Diagnostic{
			Index:  index,
			Time:   iv.Action.Time,
			Action: iv.Action.Label(),
			Kind:   iv.Kind.String(),
			Label:  iv.Label(),
		}
		if iv.Kind.IsAddonKind() && iv.Addon != nil {
			d.Addon = iv.Addon.Name
		}
		report.Diagnostics = append(report.Diagnostics, d)
	}
	return report
}

// NewQuickestReply wraps a search result
func NewQuickestReply(t order.Second) QuickestReply {
	return QuickestReply{Time: t, Possible: t != order.Infinity}
}
