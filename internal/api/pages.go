package api

import "html/template"

// Admin surface pages. Pure presentation: everything of consequence
// happens in the handlers these forms post to.

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Admin Login</title>
<style>
body{display:flex;align-items:center;justify-content:center;height:100vh;margin:0;background:#1a1a2e;font-family:sans-serif;}
.container{background:#162447;padding:2.5rem;border-radius:10px;text-align:center;}
h1{color:#e43f5a;}
input{width:100%;padding:0.8rem;margin-bottom:1rem;border-radius:5px;border:none;}
button{width:100%;padding:0.8rem;border:none;border-radius:5px;background:#e43f5a;color:white;cursor:pointer;}
</style>
</head>
<body>
<div class="container">
<h1>Admin Login</h1>
<form action="/admin">
<input type="password" name="token" placeholder="Enter Admin Token" required>
<button type="submit">Login</button>
</form>
</div>
</body>
</html>`))

var adminPage = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Download Link Generator</title>
<style>
body{font-family:sans-serif;background:#0d1117;color:#c9d1d9;padding:2rem;}
.container{max-width:1000px;margin:auto;}
h1,h2{color:#58a6ff;}
.panel{background:#161b22;padding:2rem;border:1px solid #30363d;border-radius:8px;margin-bottom:2rem;}
form{display:grid;gap:1rem;}
label{font-weight:bold;}
input{width:100%;padding:0.8rem;background:#0d1117;border:1px solid #30363d;color:#c9d1d9;border-radius:6px;}
button{background:#238636;color:white;padding:0.8rem;border:none;border-radius:6px;cursor:pointer;}
table{width:100%;border-collapse:collapse;margin-top:1rem;}
th,td{border:1px solid #30363d;padding:0.8rem;word-break:break-all;}
.error{color:#e43f5a;}
.result-box{background:#222;padding:1rem;border:1px solid #28a745;margin-top:1.5rem;display:flex;flex-direction:column;gap:0.5rem;}
</style>
</head>
<body>
<div class="container">
<h1>Download Link Generator</h1>
<div class="panel">
<h2>Generate New Link</h2>
{{if .Error}}<p class="error">Missing required fields.</p>{{end}}
<form action="/generate" method="POST">
<input type="hidden" name="token" value="{{.Token}}">
<label>Original URL:</label>
<input type="text" name="originalUrl" required>
<label>Filename (e.g., movie-name.mp4):</label>
<input type="text" name="movieName" required>
<button type="submit">Generate Link</button>
</form>
{{if .GeneratedLink}}
<div class="result-box">
<h3>Generated Link:</h3>
<input type="text" id="generated-link-input" value="{{.GeneratedLink}}" readonly>
<button onclick="copyLink()">Copy</button>
</div>
{{end}}
</div>
<div class="panel">
<h2>Generated Links</h2>
<table>
<thead><tr><th>Slug</th><th>Filename</th><th>Original URL</th><th>Action</th></tr></thead>
<tbody>
{{range .Videos}}
<tr>
<td><code>{{.Slug}}</code></td>
<td>{{.DisplayName}}</td>
<td>{{.SourceURL}}</td>
<td>
<form method="POST" action="/delete-video" onsubmit="return confirm('Delete?');">
<input type="hidden" name="token" value="{{$.Token}}">
<input type="hidden" name="slug" value="{{.Slug}}">
<button type="submit">Delete</button>
</form>
</td>
</tr>
{{end}}
</tbody>
</table>
</div>
</div>
<script>
function copyLink() {
	const input = document.getElementById('generated-link-input');
	input.select();
	input.setSelectionRange(0, 99999);
	navigator.clipboard.writeText(input.value);
}
</script>
</body>
</html>`))
