// Package easysplit provides the core types and algorithms for settling
// shared expenses. It ingests a ledger of who-paid-for-whom records and
// produces the smallest settlement plan it can find, so that a group of
// people can square up with as few point-to-point payments as possible.
//
// The core functionalities include:
//   - Balance Graph: a directed weighted graph of debts, folding every
//     recorded expense into per-pair flows and exact per-person net
//     balances.
//   - Reduction: a deterministic two-phase reducer (exact-match pass plus
//     largest-against-largest settlement) that rewrites the graph into an
//     equivalent one with fewer edges, and an exhaustive solver for small
//     groups that guarantees the minimal payment count.
//   - Equivalence Checking: verification that a reduced graph leaves every
//     participant with the same net position as the original, within a
//     fixed monetary tolerance.
//   - Exchange Rates: normalization of multi-currency records into a single
//     standard currency before settlement.
//
// This package serves as the foundational logic for the `splitbill`
// command-line tool. All iteration orders are deterministic (first-seen
// participant order), so identical inputs always produce identical plans.
package easysplit
