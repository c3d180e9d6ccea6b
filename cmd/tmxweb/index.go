package main

const indexPage = `<!DOCTYPE html>
<html>
<head>
<title>tmxweb</title>
<style>
body { font-family: sans-serif; background: #222; color: #eee; }
#map { image-rendering: pixelated; border: 1px solid #555; }
</style>
</head>
<body>
<h1 id="info">tmxweb</h1>
<ul id="layers"></ul>
<img id="map" src="/map.png">
<script>
function refresh(state) {
  document.getElementById("info").textContent = state.info;
  var ul = document.getElementById("layers");
  ul.innerHTML = "";
  state.layers.forEach(function(l) {
    var li = document.createElement("li");
    var cb = document.createElement("input");
    cb.type = "checkbox";
    cb.checked = l.visible;
    cb.onchange = function() {
      fetch("/layers/" + l.index + "/visible/" + (cb.checked ? "1" : "0"), {method: "POST"})
        .then(function(r) { return r.json(); })
        .then(function(s) {
          refresh(s);
          document.getElementById("map").src = "/map.png?t=" + Date.now();
        });
    };
    li.appendChild(cb);
    li.appendChild(document.createTextNode(" " + l.index + ": " + l.name));
    ul.appendChild(li);
  });
}
fetch("/layers").then(function(r) { return r.json(); }).then(refresh);
</script>
</body>
</html>
`
