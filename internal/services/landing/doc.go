// Package landing serves the Almost2Simple marketing page.
//
// Each page request fetches the business settings, services and FAQ from
// the sheet endpoint and decorates the embedded page shell with them. A
// failed or misconfigured fetch leaves the shell's static markup in place
// and raises one browser alert.
package landing
