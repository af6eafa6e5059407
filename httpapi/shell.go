package httpapi

import "strings"

// pageShell is the minimal HTML document around the wrapped content. The
// content placeholder receives already-sanitized HTML from the content
// pipeline. The inline script handles word selection: clicking toggles a
// word, adjacent selected positions merge into one phrase, and a lookup
// request goes to /batch.
const pageShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>lexipage</title>
<style>
body { max-width: 42rem; margin: 2rem auto; padding: 0 1rem; font: 1.1rem/1.7 Georgia, serif; }
.cw { cursor: pointer; border-radius: 2px; }
.cw.selected { background: #ffe08a; }
#lookup { position: fixed; right: 1rem; bottom: 1rem; }
#panel { border-top: 1px solid #ccc; margin-top: 2rem; padding-top: 1rem; }
#panel h3 { margin: 1rem 0 0.25rem; }
#panel .err { color: #a00; }
</style>
</head>
<body>
%CONTENT%
<button id="lookup" hidden>Look up</button>
<div id="panel"></div>
<script>
(function () {
  var selected = {};
  var btn = document.getElementById("lookup");
  var panel = document.getElementById("panel");

  document.addEventListener("click", function (e) {
    var el = e.target.closest(".cw");
    if (!el) return;
    var pos = parseInt(el.dataset.pos, 10);
    if (selected[pos]) {
      delete selected[pos];
      el.classList.remove("selected");
    } else {
      selected[pos] = el.dataset.word;
      el.classList.add("selected");
    }
    btn.hidden = Object.keys(selected).length === 0;
  });

  function phrases() {
    var positions = Object.keys(selected).map(Number).sort(function (a, b) { return a - b; });
    var out = [], run = [];
    positions.forEach(function (p, i) {
      if (i > 0 && p - positions[i - 1] > 1) { out.push(run); run = []; }
      run.push(selected[p]);
    });
    if (run.length) out.push(run);
    return out.map(function (r) { return r.join(" "); });
  }

  btn.addEventListener("click", function () {
    fetch("/batch", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ phrases: phrases() })
    })
      .then(function (r) { return r.json(); })
      .then(function (data) {
        panel.innerHTML = "";
        (data.results || []).forEach(function (res) {
          var h = document.createElement("h3");
          h.textContent = res.phrase;
          panel.appendChild(h);
          if (res.error) {
            var p = document.createElement("p");
            p.className = "err";
            p.textContent = res.error;
            panel.appendChild(p);
            return;
          }
          var d = document.createElement("p");
          d.textContent = res.definition;
          panel.appendChild(d);
          var ul = document.createElement("ul");
          (res.examples || []).forEach(function (ex) {
            var li = document.createElement("li");
            li.textContent = ex;
            ul.appendChild(li);
          });
          panel.appendChild(ul);
        });
        document.querySelectorAll(".cw.selected").forEach(function (el) {
          el.classList.remove("selected");
        });
        selected = {};
        btn.hidden = true;
      });
  });
})();
</script>
</body>
</html>
`

// renderShell embeds the wrapped content HTML in the page shell.
func renderShell(content string) string {
	return strings.Replace(pageShell, "%CONTENT%", content, 1)
}
