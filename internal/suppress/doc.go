// Package suppress hides invariants that are implied by other live
// invariants of the same point.
//
// A Link records that one invariant (the suppressed) follows from an
// ordered list of witnesses (the suppressors). The engine keeps two
// indexes: suppressed ID to its link, and suppressor ID to the links that
// name it. When a suppressor is falsified every dependent link is dropped
// and its invariant re-evaluated; it either finds new witnesses or becomes
// visible again.
//
// Witnesses are never themselves suppressed at the time a link is made,
// so the link graph stays acyclic.
package suppress
