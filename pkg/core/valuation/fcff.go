package valuation

import (
	"fairval/pkg/core/calc"
)

// runFCFF discounts projected free cash flow to firm at WACC, then bridges
// enterprise value to equity value:
//
//	baseFCFF = EBITDA × (1 − tax)
//	CF_t     = baseFCFF × (1 + g)^t        t = 1..N
//	TV       = CF_N × (1 + g_term) / (wacc − g_term)
//	EV       = Σ PV(CF_t) + PV(TV)
//	Equity   = EV − totalDebt + cash
//
// EBITDA, debt, and cash may be proxy estimates; the normalizer flags those
// substitutions so the overall confidence reflects them.
func runFCFF(n *NormalizedInputs) DCFDetail {
	a := n.Assumptions

	baseFCFF := n.EBITDA * (1 - a.TaxRate)

	flows := calc.ProjectGrowthSeries(baseFCFF, a.RevenueGrowth, a.ProjectionYears)
	pvFlows := calc.PresentValueOfCashFlows(flows, a.WACC)

	tv := calc.TerminalValueGordonGrowth(flows[len(flows)-1], a.WACC, a.TerminalGrowth)
	pvTerminal := calc.PresentValue(tv, a.WACC, a.ProjectionYears)

	ev := pvFlows + pvTerminal
	equityValue := ev - n.TotalDebt + n.Cash

	return DCFDetail{
		BaseCashFlow:       baseFCFF,
		ProjectedCashFlows: flows,
		PVCashFlows:        pvFlows,
		TerminalValue:      tv,
		PVTerminal:         pvTerminal,
		EnterpriseValue:    ev,
		EquityValue:        equityValue,
		ShareValue:         equityValue / n.SharesOutstanding,
	}
}
