package main

import (
	"net/http"

	"github.com/lithammer/dedent"
	"github.com/rs/zerolog/log"
)

var howItWorksText = dedent.Dedent(`
	1. Enter the specifications of the used car in the form below.
	2. Click Predict Price to get an estimated market value in your selected currency.
	3. You can change the currency and re-predict as needed.
	4. Use the Reset button to start over.`)

type pageData struct {
	Catalog           catalogView
	HowItWorks        string
	PredictionEnabled bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Catalog:           s.buildCatalog(),
		HowItWorks:        howItWorksText,
		PredictionEnabled: s.predictor != nil,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("failed to render index page")
	}
}

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>US Used Car Price Predictor</title>
</head>
<body>
<h1>US Used Car Price Predictor</h1>

<details>
<summary>How it works</summary>
<pre>{{.HowItWorks}}</pre>
</details>

{{if not .PredictionEnabled}}
<p><strong>Prediction is currently unavailable: model artifacts failed to load.</strong></p>
{{end}}

<form id="car-form">
<fieldset>
<legend>Currency</legend>
<select name="__currency">
{{range .Catalog.Currencies}}<option value="{{.Code}}">{{.Name}}</option>
{{end}}</select>
</fieldset>

<fieldset>
<legend>Specifications</legend>
{{range .Catalog.Numeric}}
<label>{{.Label}}{{if .Unit}} ({{.Unit}}){{end}}
<input type="number" name="{{.Column}}" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Default}}">
</label><br>
{{end}}
</fieldset>

<fieldset>
<legend>Trim &amp; Drivetrain</legend>
{{range .Catalog.Categorical}}
<label>{{.Label}}
<select name="{{.Column}}" data-kind="categorical">
{{range .Options}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
</label><br>
{{end}}
</fieldset>

<fieldset>
<legend>Condition &amp; Status</legend>
{{range .Catalog.Boolean}}
<label>{{.Label}}
<select name="{{.Column}}" data-kind="boolean">
<option value="0">No</option>
<option value="1">Yes</option>
</select>
</label><br>
{{end}}
</fieldset>

<button type="submit" {{if not .PredictionEnabled}}disabled{{end}}>Predict Price</button>
<button type="reset">Reset</button>
</form>

<div id="result"></div>
<div id="messages"></div>

<script>
const form = document.getElementById('car-form');
const result = document.getElementById('result');
const messages = document.getElementById('messages');

form.addEventListener('reset', () => {
	result.textContent = '';
	messages.textContent = '';
});

form.addEventListener('submit', async (e) => {
	e.preventDefault();
	result.textContent = '';
	messages.textContent = '';

	const values = {};
	let currencyCode = 'USD';
	for (const el of form.elements) {
		if (!el.name) continue;
		if (el.name === '__currency') {
			currencyCode = el.value;
		} else if (el.type === 'number') {
			if (el.value !== '') values[el.name] = Number(el.value);
		} else if (el.dataset.kind === 'boolean') {
			values[el.name] = Number(el.value);
		} else {
			values[el.name] = el.value;
		}
	}

	const res = await fetch('/api/predict', {
		method: 'POST',
		headers: {'Content-Type': 'application/json'},
		body: JSON.stringify({values: values, currency: currencyCode}),
	});
	const body = await res.json();

	if (body.status !== 'ok') {
		const details = body.error.details;
		let text = body.error.message;
		if (Array.isArray(details)) {
			text += '\n' + details.map(d => d.message).join('\n');
		}
		result.textContent = text;
		return;
	}

	const d = body.data;
	let text = 'Predicted Car Price: ' + d.symbol + d.display;
	if (d.currency !== 'USD') {
		text += ' (USD: $' + d.display_usd + ')';
	}
	result.textContent = text;

	const notes = (d.advisories || []).map(a => a.message).concat(d.warnings || []);
	messages.textContent = notes.join('\n');
});
</script>

<p><small>Note: This prediction is based on a machine learning model and should be used as an estimate.</small></p>
</body>
</html>
`
