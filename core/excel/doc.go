// Package excel reads workbook sheets in the three-row header layout
// (descriptions, field names, type descriptors) into raw sources for the
// conversion pipeline.
package excel
