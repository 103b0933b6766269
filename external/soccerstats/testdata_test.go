package soccerstats

import (
	"fmt"
	"strings"
)

func formCell(classes ...string) string {
	var b strings.Builder
	b.WriteString("<td>")
	for _, class := range classes {
		fmt.Fprintf(&b, `<div class="%s">&nbsp;</div>`, class)
	}
	b.WriteString("</td>")
	return b.String()
}

func standingRow(position, team, played, wins, draws, losses, form string) string {
	return "<tr>" +
		"<td>" + position + "</td>" +
		"<td>" + team + "</td>" +
		"<td>" + played + "</td>" +
		"<td>" + wins + "</td>" +
		"<td>" + draws + "</td>" +
		"<td>" + losses + "</td>" +
		"<td>20</td><td>8</td><td>12</td><td>29</td>" +
		form +
		"</tr>"
}

func standingsPage(rows ...string) string {
	return `<html><body>
<label for="LTAB_2">Home</label><div><table id="btable"><tr><td>wrong table</td></tr></table></div>
<label for="LTAB_1">Overall</label>
<div>
<table id="btable">
<tr><th>#</th><th>Team</th><th>GP</th><th>W</th><th>D</th><th>L</th><th>GF</th><th>GA</th><th>GD</th><th>Pts</th><th>Form</th></tr>
` + strings.Join(rows, "\n") + `
</table>
</div>
</body></html>`
}

const fixturesPage = `<html><body>
<table>
<tr><td>Date</td><td>Match</td></tr>
<tr><td>Sat 6 Dec<br/>18:30</td><td>Volos NFC<br>Olympiakos</td></tr>
<tr><td>Sun 7 Dec 15:00</td><td><a href="/team.asp?id=1">Aris</a><br /><b>PAOK</b></td></tr>
<tr><td>Mon 1 Dec 16:00</td><td>Asteras - Levadiakos</td></tr>
<tr><td>Sat 29 Nov</td><td>Volos NFC - Lamia</td></tr>
<tr><td>Sat 10 Jan 17:00</td><td>Panetolikos - Atromitos</td></tr>
<tr><td>Sat 13 Dec 20:00</td><td>OnlyOne</td></tr>
<tr><td>Sat 13 Dec 20:00</td><td>Brighton &amp; Hove Albion<BR>Chelsea</td></tr>
<tr><td>Xyz 13 Foo 20:00</td><td>Kifisia<br>OFI</td></tr>
<tr><td>Fri 12 Dec 19:00</td></tr>
</table>
</body></html>`
