// Package templates holds the HTML shells served by hubview: the embedded
// Autodesk viewer page and the file picker index.
package templates

// Viewer placeholder tokens substituted by the viewer service. The names are
// part of the embedding contract and must match the template text exactly.
const (
	TokenPlaceholder = "APS_TOKEN_PLACEHOLDER"
	URNPlaceholder   = "URN_PLACEHOLDER"
	GUIDPlaceholder  = "VIEW_GUID_PLACEHOLDER"
)

// ViewerHTML is the Autodesk Platform Services viewer shell. The three
// placeholders are replaced with the access token, the base64url-encoded URN
// and the selected view guid (empty guid loads the default geometry).
const ViewerHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Model Viewer</title>
    <link rel="stylesheet" href="https://developer.api.autodesk.com/modelderivative/v2/viewers/7.*/style.min.css" type="text/css">
    <style>
        html, body { margin: 0; padding: 0; height: 100%; overflow: hidden; }
        #viewer { position: absolute; width: 100%; height: 100%; }
    </style>
</head>
<body>
    <div id="viewer"></div>
    <script src="https://developer.api.autodesk.com/modelderivative/v2/viewers/7.*/viewer3D.min.js"></script>
    <script>
        var viewer;
        var options = {
            env: 'AutodeskProduction2',
            api: 'streamingV2',
            getAccessToken: function (onTokenReady) {
                onTokenReady('APS_TOKEN_PLACEHOLDER', 3600);
            }
        };

        Autodesk.Viewing.Initializer(options, function () {
            var container = document.getElementById('viewer');
            viewer = new Autodesk.Viewing.GuiViewer3D(container);
            viewer.start();
            Autodesk.Viewing.Document.load('urn:URN_PLACEHOLDER', onDocumentLoadSuccess, onDocumentLoadFailure);
        });

        function onDocumentLoadSuccess(doc) {
            var guid = 'VIEW_GUID_PLACEHOLDER';
            var viewable;
            if (guid) {
                viewable = doc.getRoot().findByGuid(guid);
            }
            if (!viewable) {
                viewable = doc.getRoot().getDefaultGeometry();
            }
            viewer.loadDocumentNode(doc, viewable);
        }

        function onDocumentLoadFailure(code, message) {
            console.error('Failed to load document', code, message);
        }
    </script>
</body>
</html>
`

// IndexHTML is the cascading hub / file / view picker. It drives the JSON API
// and embeds the viewer page in an iframe once a file is chosen.
const IndexHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>hubview</title>
    <style>
        body { font-family: sans-serif; margin: 0; display: flex; height: 100vh; }
        #sidebar { width: 320px; padding: 16px; border-right: 1px solid #ddd; overflow-y: auto; }
        #frame { flex: 1; border: none; }
        label { display: block; margin-top: 12px; font-weight: bold; }
        select { width: 100%; margin-top: 4px; padding: 6px; }
        #status { margin-top: 12px; color: #666; font-size: 0.85em; }
    </style>
</head>
<body>
    <div id="sidebar">
        <h2>Data Exchange Viewer</h2>
        <label for="hubs">Available Hubs</label>
        <select id="hubs"></select>
        <label for="files">Available Viewables</label>
        <select id="files"></select>
        <label for="views">Views</label>
        <select id="views"></select>
        <div id="status"></div>
    </div>
    <iframe id="frame"></iframe>
    <script>
        var hubSelect = document.getElementById('hubs');
        var fileSelect = document.getElementById('files');
        var viewSelect = document.getElementById('views');
        var frame = document.getElementById('frame');
        var status = document.getElementById('status');
        var catalog = {};

        function fill(select, labels, values) {
            select.innerHTML = '';
            labels.forEach(function (label, i) {
                var opt = document.createElement('option');
                opt.textContent = label;
                opt.value = values ? values[i] : label;
                select.appendChild(opt);
            });
        }

        function loadHubs() {
            fetch('/api/v1/hubs').then(function (r) { return r.json(); }).then(function (body) {
                fill(hubSelect, body.hubs);
                loadCatalog();
            });
        }

        function loadCatalog() {
            fetch('/api/v1/catalog?hub=' + encodeURIComponent(hubSelect.value))
                .then(function (r) { return r.json(); })
                .then(function (body) {
                    catalog = body.catalog || {};
                    fill(fileSelect, body.files);
                    loadViews();
                });
        }

        function loadViews() {
            var entry = catalog[fileSelect.value];
            if (!entry) {
                fill(viewSelect, ['No views found']);
                frame.removeAttribute('src');
                return;
            }
            fetch('/api/v1/views?urn=' + encodeURIComponent(entry.urn))
                .then(function (r) { return r.json(); })
                .then(function (body) {
                    fill(viewSelect, body.views.map(function (v) { return v.label; }),
                        body.views.map(function (v) { return v.guid; }));
                    loadViewer();
                });
        }

        function loadViewer() {
            var entry = catalog[fileSelect.value];
            if (!entry) { return; }
            var guid = viewSelect.value || '';
            frame.src = '/api/v1/viewer?urn=' + encodeURIComponent(entry.urn) + '&guid=' + encodeURIComponent(guid);
        }

        hubSelect.addEventListener('change', loadCatalog);
        fileSelect.addEventListener('change', loadViews);
        viewSelect.addEventListener('change', loadViewer);

        var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
        var ws = new WebSocket(proto + location.host + '/api/v1/catalog/progress');
        ws.onmessage = function (msg) {
            var event = JSON.parse(msg.data);
            status.textContent = event.stage + ': ' + event.name;
        };

        loadHubs();
    </script>
</body>
</html>
`
