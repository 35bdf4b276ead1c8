package api

import (
	"html/template"
	"net/http"
)

// The gateway requires an HTML response body for its POST callback rather
// than a raw 3xx, so the POST variant answers 200 with a page that forwards
// the browser itself. This duality is an external constraint, not a design
// choice.
var redirectPage = template.Must(template.New("redirect").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<meta http-equiv="refresh" content="0;url={{.Target}}" />
<title>Processing Payment</title>
<style>
body{font-family:system-ui,Arial,sans-serif;margin:2rem;text-align:center;}
.card{max-width:560px;margin:0 auto;border:1px solid #ddd;border-radius:12px;padding:24px;}
</style>
<script>window.location.replace({{.Target}});</script>
</head>
<body>
<div class="card">
  <h2>Processing your payment…</h2>
  <p>You are being redirected. <a href="{{.Target}}">Continue</a> if nothing happens.</p>
</div>
</body>
</html>`))

var errorPage = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<meta http-equiv="refresh" content="5" />
<title>Payment Error</title>
<style>
body{font-family:system-ui,Arial,sans-serif;margin:2rem;text-align:center;}
.card{max-width:560px;margin:0 auto;border:1px solid #ddd;border-radius:12px;padding:24px;}
.fail{color:#b00020}
</style>
</head>
<body>
<div class="card">
  <h2 class="fail">Payment Error</h2>
  <p>{{.Msg}}</p>
  <p>This page will refresh automatically.</p>
</div>
</body>
</html>`))

func renderRedirectPage(w http.ResponseWriter, target string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = redirectPage.Execute(w, struct{ Target string }{Target: target})
}

// renderErrorPage shows a generic branded message. It never includes the
// secret, signatures, or internal error details.
func renderErrorPage(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_ = errorPage.Execute(w, struct{ Msg string }{Msg: msg})
}
