// Package patrimoine computes the financial figures of a rental property
// portfolio. It is a stateless engine: it reads a snapshot of the owner's
// records and derives everything else from it.
//
// The core functionalities include:
//   - Cash flow: monthly rent minus charges minus loan payment, per property,
//     per lot (prorated by rent) and per tenant (net of housing aid), plus the
//     rent actually collected over a range of months.
//   - Loans: annuity payment, remaining principal and the full amortization
//     table, from a single implementation every other computation calls.
//   - Rentability: gross and net yield, cumulative balance, ROI and an IRR
//     estimate. A figure that cannot be computed is reported as such, never
//     as 0%.
//   - Projection: a quarterly net worth series mixing cash purchases, which
//     appreciate, and credit purchases, which build equity as the loan is
//     repaid.
//   - Snapshots: lenient JSON and YAML decoding of the records, and a sanity
//     check listing what the owner should fix.
//
// This package serves as the foundational logic for the `immo` command-line
// tool.
package patrimoine
