// Package files provides the thin file-system collaborators of the
// grade pipeline: locating the workshop report and the participant
// roster inside a data folder, loading the report markup, and reading
// the roster from the CSV and XLSX formats the platform exports.
//
// Roster columns are located by header text rather than position,
// since export layouts vary by platform version. None of this code
// makes grading decisions; rows it cannot use are surfaced as
// accumulated problems for the run summary.
package files
