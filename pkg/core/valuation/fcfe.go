package valuation

import (
	"fairval/pkg/core/calc"
)

// runFCFE discounts projected free cash flow to equity at the required
// return and bridges to a per-share value.
//
//	CF_t = baseFCFE × (1 + g)^t            t = 1..N
//	TV   = CF_N × (1 + g_term) / (r − g_term)
//	Equity = Σ PV(CF_t) + PV(TV)
func runFCFE(n *NormalizedInputs) DCFDetail {
	a := n.Assumptions

	flows := calc.ProjectGrowthSeries(n.BaseFCFE, a.RevenueGrowth, a.ProjectionYears)
	pvFlows := calc.PresentValueOfCashFlows(flows, a.RequiredReturn)

	tv := calc.TerminalValueGordonGrowth(flows[len(flows)-1], a.RequiredReturn, a.TerminalGrowth)
	pvTerminal := calc.PresentValue(tv, a.RequiredReturn, a.ProjectionYears)

	equityValue := pvFlows + pvTerminal

	return DCFDetail{
		BaseCashFlow:       n.BaseFCFE,
		ProjectedCashFlows: flows,
		PVCashFlows:        pvFlows,
		TerminalValue:      tv,
		PVTerminal:         pvTerminal,
		EquityValue:        equityValue,
		ShareValue:         equityValue / n.SharesOutstanding,
	}
}
