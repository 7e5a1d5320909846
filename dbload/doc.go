// Package dbload implements the stock [db.Loader]: it reads the REXS
// model database XML distribution (one rexsModel file per version and
// language) from a directory and materializes a [db.Model] per file.
//
// The database files are the catalog the pipeline validates documents
// against, not model documents themselves, so they go through plain
// encoding/xml decoding rather than the model parser.
package dbload
