// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalereport

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("report").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Analytical report</title>
<style>
table.scalestat { border-collapse: collapse; }
table.scalestat th, table.scalestat td { padding: 0 0.5em; text-align: right; }
</style>
</head>
<body>
<h1>Analytical report</h1>
<h2>Overall statistics</h2>
<table class="overview">
<tr><th>Tests<td>{{.Overview.Tests}}
<tr><th>Measurements<td>{{.Overview.Rows}}
<tr><th>Thread range<td>{{.Overview.MinThreads}} to {{.Overview.MaxThreads}}
</table>
{{- with .Warnings}}
<h2>Warnings</h2>
<ul>
{{- range .}}
<li>{{.}}
{{- end}}
</ul>
{{- end}}
<h2>Results by test</h2>
{{- range .Tests}}
<h3>Test {{.Test}}: K={{.K}}, N={{comma .N}} ({{comma64 .Elements}} elements)</h3>
<p>Sequential version: {{fmtTime .SeqTime}} ms</p>
<table class="scalestat">
<tr><th>Threads<th>Time(ms)<th>Speedup<th>Efficiency<th>Elements/ms
{{- range .Rows}}
<tr><td>{{.Threads}}<td>{{fmtTime .ParTime}}<td>{{fmtSpeedup .Speedup}}<td>{{fmtEfficiency .Efficiency}}%<td>{{fmtThroughput .Throughput}}
{{- end}}
</table>
{{- end}}
<h2>Conclusions and analysis</h2>
{{- with .Extrema.Speedup}}
<p>Maximum speedup: {{fmtSpeedup .Speedup}}x, achieved by test {{.Test}} (K={{.K}}, N={{comma .N}}) with {{plural .Threads "thread"}}; efficiency {{fmtEfficiency .Efficiency}}%.</p>
{{- end}}
{{- with .Extrema.Efficiency}}
<p>Maximum efficiency: {{fmtEfficiency .Efficiency}}%, achieved by test {{.Test}} (K={{.K}}, N={{comma .N}}) with {{plural .Threads "thread"}}; speedup {{fmtSpeedup .Speedup}}x.</p>
{{- end}}
<h3>Scalability</h3>
<table class="scalestat">
<tr><th>Threads<th>Runs<th>Mean efficiency<th>Mean speedup
{{- range .Scalability}}
<tr><td>{{.Threads}}<td>{{.Count}}<td>{{fmtEfficiency .MeanEfficiency}}%<td>{{fmtSpeedup .MeanSpeedup}}x
{{- end}}
</table>
{{- with .Recommendations}}
<h3>Recommendations</h3>
<ul>
{{- range .}}
<li>{{.}}
{{- end}}
</ul>
{{- end}}
</body>
</html>
`))

var htmlFuncs = template.FuncMap{
	"comma":         func(n int) string { return humanize.Comma(int64(n)) },
	"comma64":       humanize.Comma,
	"fmtTime":       fmtTime,
	"fmtSpeedup":    fmtSpeedup,
	"fmtEfficiency": fmtEfficiency,
	"fmtThroughput": fmtThroughput,
	"plural":        plural,
}

// WriteHTML writes r to w as a standalone HTML page.
func (r *Report) WriteHTML(w io.Writer) error {
	return htmlTemplate.Execute(w, r)
}
