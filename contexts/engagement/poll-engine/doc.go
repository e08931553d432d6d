// Package pollengine implements the poll and survey engine inside the
// engagement context of the Atrium portal.
//
// The package owns poll definition lifecycle (create/update/delete),
// response submission with per-respondent duplicate prevention, and results
// aggregation (tallies, percentages, free-text collection, rating averages).
// Business rules live in application/domain layers; persistence and
// transport stay behind ports and adapters. User management, documents,
// payments and notices are separate portal services and never reach into
// this package.
package pollengine
