// Package internaldefs holds the shared metric name and help-text tables used
// by the exporters under metrics/export. It exists so the Prometheus and OTel
// exporters render identical metric names from one definition list.
package internaldefs
