package handlers

// ── Dashboard page ────────────────────────────────────────────────────────────

const tmplDashboard = `
{{define "dashboard"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>SRM KTR Automated Dustbin Dashboard</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#f3f4f6;color:#1f2937;font-size:14px}
header{background:#2563eb;color:#fff;padding:16px;display:flex;justify-content:space-between;align-items:center}
header h1{font-size:22px}
main{max-width:1100px;margin:0 auto;padding:16px}
.tabs{display:flex;gap:8px;margin-bottom:16px}
.tabs a{padding:8px 16px;border-radius:4px;background:#e5e7eb;color:#1f2937;text-decoration:none}
.tabs a.active{background:#3b82f6;color:#fff}
.panel{background:#fff;border-radius:8px;box-shadow:0 1px 3px rgba(0,0,0,.1);padding:16px}
#map,#pick-map{height:400px;width:100%}
#pick-map{height:300px}
table{width:100%;border-collapse:collapse}
th{text-align:left;padding:10px 16px;background:#e5e7eb;text-transform:uppercase;font-size:12px}
th a{color:inherit;text-decoration:none}
td{padding:10px 16px;border-bottom:1px solid #e5e7eb}
.badge{padding:2px 10px;border-radius:999px;font-size:12px}
.low{background:#bbf7d0;color:#166534}
.medium{background:#fef08a;color:#854d0e}
.high{background:#fecaca;color:#991b1b}
.cards{display:grid;grid-template-columns:1fr 1fr;gap:24px}
.bar{height:18px;background:#8884d8;border-radius:2px}
.btn{border:0;border-radius:4px;padding:8px 14px;font-weight:700;cursor:pointer;color:#fff}
.btn-green{background:#22c55e}.btn-red{background:#ef4444}.btn-blue{background:#3b82f6}
#toasts{position:fixed;bottom:16px;right:16px;z-index:1000}
.toast{background:#ef4444;color:#fff;padding:14px;border-radius:8px;margin-top:8px;display:flex;gap:16px;justify-content:space-between}
.toast button{background:none;border:0;color:#fff;cursor:pointer;font-size:16px}
dialog{border:0;border-radius:8px;padding:24px;width:600px}
dialog label{display:block;margin:12px 0 4px}
dialog input{width:100%;padding:8px;border:1px solid #d1d5db;border-radius:4px}
</style>
</head>
<body>
<header>
  <h1>🗑️ SRM KTR Automated Dustbin Dashboard</h1>
  <button class="btn btn-green" onclick="document.getElementById('add').showModal()">+ Add Dustbin</button>
</header>
<main>
  <nav class="tabs">
    {{range .Tabs}}<a href="?view={{.Mode}}" class="{{if .Active}}active{{end}}" onclick="return selectView({{.Mode}})">{{.Label}}</a>{{end}}
  </nav>
  <div class="panel">
  {{if eq .View "map"}}
    <div id="map"></div>
  {{else if eq .View "statistics"}}
    {{with .Statistics}}
    <div class="cards">
      <div>
        <h3>Overview</h3>
        <p>Total Dustbins: <b>{{.TotalBins}}</b></p>
        <p>Average Fill Percentage: <b>{{.AverageFillPercentage}}%</b></p>
        <p>Dustbins Needing Attention: <b style="color:#ef4444">{{.NeedingAttention}}</b></p>
      </div>
      <div>
        <h3>Fill Level Distribution</h3>
        {{range .Distribution}}<p><span style="color:{{.Color}}">■</span> {{.Name}}: <b>{{.Value}}</b></p>{{end}}
      </div>
    </div>
    <h3 style="margin-top:24px">Dustbin Fill Percentages</h3>
    <table>
      {{range .Series}}<tr><td style="width:120px">{{.SerialNumber}}</td><td><div class="bar" style="width:{{.FillPercentage}}%"></div></td><td style="width:60px">{{.FillPercentage}}%</td></tr>{{end}}
    </table>
    {{end}}
  {{else}}
    <form method="get" style="margin-bottom:16px">
      <input type="hidden" name="view" value="table">
      <input type="hidden" name="sort" value="{{.Table.Field}}">
      <input type="hidden" name="dir" value="{{.Table.Direction}}">
      <input type="text" name="filter" value="{{.Table.Filter}}" placeholder="Filter dustbins..." style="width:100%;padding:8px">
    </form>
    <table>
      <thead><tr>
        {{range .Headers}}<th><a href="{{.Href}}">{{.Label}} {{if .Active}}{{if eq .Direction "asc"}}▲{{else}}▼{{end}}{{else}}⇅{{end}}</a></th>{{end}}
        <th>Actions</th>
      </tr></thead>
      <tbody>
      {{range .Rows}}<tr>
        <td>{{.ID}}</td><td>{{.SerialNumber}}</td>
        <td><span class="badge {{.FillClass}}">{{.FillPercentage}}%</span></td>
        <td><button class="btn btn-red" onclick="removeBin({{.ID}})">🗑</button></td>
      </tr>{{end}}
      </tbody>
    </table>
  {{end}}
  </div>
</main>

<dialog id="add">
  <h2>Add New Dustbin</h2>
  <form id="add-form">
    <label for="serialNumber">Serial Number</label>
    <input type="text" id="serialNumber" required>
    <label>Location (Click on the map to set)</label>
    <div id="pick-map"></div>
    <p id="picked" style="margin-top:8px;color:#4b5563"></p>
    <div style="display:flex;justify-content:flex-end;gap:8px;margin-top:16px">
      <button type="button" class="btn" style="background:#d1d5db;color:#1f2937" onclick="document.getElementById('add').close()">Cancel</button>
      <button type="submit" class="btn btn-blue" id="add-submit" disabled>Add Dustbin</button>
    </div>
  </form>
</dialog>

<div id="toasts"></div>

<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script>
const center = [{{.CenterLat}}, {{.CenterLng}}];
const tiles = {{.TileURL}};
const attribution = {{.Attribution}};

function selectView(mode) {
  fetch('/api/view', {
    method: 'PUT',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({view: mode}),
  }).finally(() => { location.href = '?view=' + mode; });
  return false;
}

async function removeBin(id) {
  await fetch('/api/bins/' + id, {method: 'DELETE'});
}

let picked = null, pickMap = null, pickMarker = null;
document.getElementById('add').addEventListener('toggle', () => {
  if (pickMap) { pickMap.invalidateSize(); return; }
  pickMap = L.map('pick-map').setView(center, {{.Zoom}});
  L.tileLayer(tiles, {attribution}).addTo(pickMap);
  pickMap.on('click', e => {
    picked = [e.latlng.lat, e.latlng.lng];
    if (pickMarker) pickMarker.setLatLng(e.latlng); else pickMarker = L.marker(e.latlng).addTo(pickMap);
    document.getElementById('picked').textContent = 'Selected coordinates: ' + picked[0].toFixed(6) + ', ' + picked[1].toFixed(6);
    document.getElementById('add-submit').disabled = false;
  });
});
document.getElementById('add-form').addEventListener('submit', async e => {
  e.preventDefault();
  if (!picked) return;
  const res = await fetch('/api/bins', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({serialNumber: document.getElementById('serialNumber').value, fillPercentage: 0, lat: picked[0], lng: picked[1]}),
  });
  if (res.ok) { document.getElementById('add').close(); location.reload(); }
});

let markers = null;
async function drawMap() {
  const el = document.getElementById('map');
  if (!el) return;
  const view = await (await fetch('/api/map')).json();
  if (!markers) {
    const map = L.map('map').setView(view.center, view.zoom);
    L.tileLayer(view.tileUrl, {attribution: view.attribution}).addTo(map);
    markers = L.layerGroup().addTo(map);
  }
  markers.clearLayers();
  L.geoJSON(view.bins, {
    onEachFeature: (f, layer) => layer.bindPopup('<b>' + f.properties.popupTitle + '</b><br>' + f.properties.popupBody),
  }).addTo(markers);
}
drawMap();

function toast(n) {
  const div = document.createElement('div');
  div.className = 'toast';
  div.id = 'n-' + n.id;
  div.innerHTML = '<span></span><button>✕</button>';
  div.querySelector('span').textContent = n.message;
  div.querySelector('button').onclick = () => fetch('/api/notifications/' + n.id, {method: 'DELETE'});
  document.getElementById('toasts').appendChild(div);
}
function untoast(n) {
  const div = document.getElementById('n-' + n.id);
  if (div) div.remove();
}

const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
ws.onmessage = ev => {
  for (const line of ev.data.split('\n')) {
    const msg = JSON.parse(line);
    switch (msg.type) {
    case 'snapshot': (msg.data.notifications || []).forEach(toast); break;
    case 'notification_added': toast(msg.data); break;
    case 'notification_expired':
    case 'notification_dismissed': untoast(msg.data); break;
    case 'bins_updated': if (document.getElementById('map')) drawMap(); else location.reload(); break;
    case 'view_changed': if (msg.data !== {{.View}}) location.href = '?view=' + msg.data; break;
    }
  }
};
</script>
</body>
</html>
{{end}}`
