// Package sitegen stamps a per-organization site out of a template tree.
//
// A run loads one configuration, flattens it into placeholders, rewrites a
// fixed list of template files into the output tree, rewrites package.json and
// finally copies a fixed list of asset directories verbatim. Only a bad
// configuration aborts a run; every other problem is recorded as a warning in
// the Report and processing moves on to the next item.
//
// Runs are single-threaded and touch nothing but the local filesystem. Two runs
// into the same output directory must not overlap.
package sitegen
