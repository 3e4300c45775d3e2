// Package vault abstracts the note vault behind a small capability
// interface (read template, write file, rename file, show notice) and
// implements deterministic file placement for imported email notes:
// a dated filename, a subfolder resolved from YYYY / YYYY-MM tokens, and a
// fixed Chronological prefix.
package vault
