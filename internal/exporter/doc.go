// Package exporter writes the grade import file: one CSV row per
// roster participant in roster order, numeric fields formatted to two
// decimal places, null grades rendered as empty fields rather than
// "0". Output is deterministic, so re-running the pipeline on
// unchanged inputs yields a byte-identical file.
package exporter
