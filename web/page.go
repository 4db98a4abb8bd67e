package web

// dashboardHTML is the single-page dashboard. The dataset is embedded
// as JSON and filtered client-side, so the page needs no framework and
// no extra round-trips.
const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>CoinAfrique Scraper Dashboard</title>
	<style>
		:root {
			--bg: #10131a;
			--panel: #181d27;
			--card: #1f2531;
			--accent: #ffb347;
			--text: #e8e8ed;
			--muted: #8a92a6;
			--border: #2c3442;
			--danger: #ff6b6b;
		}
		* { margin: 0; padding: 0; box-sizing: border-box; }
		body {
			font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
			background: var(--bg); color: var(--text); line-height: 1.5;
		}
		.container { max-width: 1200px; margin: 0 auto; padding: 1.5rem; }
		header { padding: 1.5rem 0; border-bottom: 1px solid var(--border); margin-bottom: 1.5rem; }
		h1 { font-size: 1.6rem; }
		h1 span { color: var(--accent); }
		.subtitle { color: var(--muted); font-size: 0.9rem; }
		.notice {
			background: var(--card); border: 1px solid var(--accent); color: var(--accent);
			border-radius: 8px; padding: 0.6rem 1rem; margin-bottom: 1rem;
		}
		.toolbar { display: flex; gap: 0.75rem; flex-wrap: wrap; margin-bottom: 1.5rem; align-items: center; }
		.toolbar a, .toolbar button, .toolbar label.upload {
			background: var(--card); border: 1px solid var(--border); color: var(--text);
			padding: 0.5rem 1rem; border-radius: 8px; font-size: 0.85rem;
			text-decoration: none; cursor: pointer;
		}
		.toolbar a:hover, .toolbar button:hover, .toolbar label.upload:hover { border-color: var(--accent); }
		.filters {
			display: grid; grid-template-columns: repeat(auto-fit, minmax(170px, 1fr));
			gap: 1rem; background: var(--panel); border: 1px solid var(--border);
			border-radius: 10px; padding: 1rem; margin-bottom: 1.5rem;
		}
		.filters label { display: block; font-size: 0.7rem; color: var(--muted); text-transform: uppercase; margin-bottom: 0.3rem; }
		.filters input, .filters select {
			width: 100%; padding: 0.45rem 0.6rem; background: var(--card);
			border: 1px solid var(--border); border-radius: 6px; color: var(--text);
		}
		.checkbox { display: flex; align-items: center; gap: 0.5rem; padding-top: 1.1rem; }
		.metrics { display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: 1rem; margin-bottom: 1.5rem; }
		.metric { background: var(--card); border: 1px solid var(--border); border-radius: 10px; padding: 1rem; text-align: center; }
		.metric .value { font-size: 1.4rem; font-weight: 700; color: var(--accent); }
		.metric .label { font-size: 0.7rem; color: var(--muted); text-transform: uppercase; }
		.charts { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; margin-bottom: 1.5rem; }
		@media (max-width: 800px) { .charts { grid-template-columns: 1fr; } }
		.chart { background: var(--panel); border: 1px solid var(--border); border-radius: 10px; padding: 1rem; }
		.chart h2 { font-size: 0.9rem; color: var(--muted); margin-bottom: 0.75rem; }
		.bar-row { display: flex; align-items: center; gap: 0.5rem; margin-bottom: 0.4rem; font-size: 0.8rem; }
		.bar-row .bar-label { width: 8.5rem; color: var(--muted); overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
		.bar-row .bar-track { flex: 1; background: var(--card); border-radius: 4px; height: 14px; }
		.bar-row .bar-fill { background: var(--accent); height: 100%; border-radius: 4px; min-width: 2px; }
		.bar-row .bar-count { width: 3rem; text-align: right; color: var(--text); }
		.empty { text-align: center; color: var(--muted); padding: 3rem 0; }
		.errors { background: var(--panel); border: 1px solid var(--danger); border-radius: 10px; padding: 1rem; margin-bottom: 1.5rem; }
		.errors h2 { font-size: 0.9rem; color: var(--danger); margin-bottom: 0.5rem; }
		.errors div { font-size: 0.8rem; color: var(--muted); }
		table { width: 100%; border-collapse: collapse; font-size: 0.82rem; background: var(--panel); border-radius: 10px; overflow: hidden; }
		th, td { padding: 0.5rem 0.75rem; border-bottom: 1px solid var(--border); text-align: left; }
		th { color: var(--muted); text-transform: uppercase; font-size: 0.7rem; }
		td.no-price { color: var(--muted); font-style: italic; }
		footer { color: var(--muted); font-size: 0.8rem; padding: 1.5rem 0; text-align: center; }
	</style>
</head>
<body>
<div class="container">
	<header>
		<h1>CoinAfrique <span>Scraper Dashboard</span></h1>
		<div class="subtitle">Batch scraped: {{.ScrapedAt}}</div>
	</header>

	{{if .Notice}}<div class="notice">{{.Notice}}</div>{{end}}

	<div class="toolbar">
		<a href="/export.csv">Download cleaned CSV</a>
		<form method="POST" action="/upload" enctype="multipart/form-data" style="display:inline">
			<label class="upload">Import Web Scraper CSV
				<input type="file" name="csv" accept=".csv" style="display:none" onchange="this.form.submit()">
			</label>
		</form>
		<a href="{{.FormURL}}" target="_blank" rel="noopener">Evaluation form</a>
		<a href="/api/listings">API</a>
	</div>

	<div class="filters">
		<div>
			<label for="f-type">Type</label>
			<select id="f-type"><option value="">All</option></select>
		</div>
		<div>
			<label for="f-location">Location contains</label>
			<input id="f-location" type="text" placeholder="e.g. Dakar">
		</div>
		<div>
			<label for="f-min">Min price (FCFA)</label>
			<input id="f-min" type="number" min="0">
		</div>
		<div>
			<label for="f-max">Max price (FCFA)</label>
			<input id="f-max" type="number" min="0">
		</div>
		<div class="checkbox">
			<input id="f-noprice" type="checkbox" checked>
			<label for="f-noprice" style="margin:0; text-transform:none">Include listings without price</label>
		</div>
	</div>

	<div id="content"></div>

	<footer>Cleaned data only — raw price text is preserved in the CSV export.</footer>
</div>

<script>
const LISTINGS = {{.ListingsJSON}} || [];
const PAGE_ERRORS = {{.ErrorsJSON}} || [];

function fmt(n) {
	return Math.round(n).toString().replace(/\B(?=(\d{3})+(?!\d))/g, " ");
}

function computeStats(rows) {
	const prices = rows.filter(r => r.price !== null).map(r => r.price).sort((a, b) => a - b);
	const stats = { total: rows.length, withPrice: prices.length, min: 0, median: 0, mean: 0, max: 0 };
	if (prices.length > 0) {
		stats.min = prices[0];
		stats.max = prices[prices.length - 1];
		const mid = Math.floor(prices.length / 2);
		stats.median = prices.length % 2 ? prices[mid] : (prices[mid - 1] + prices[mid]) / 2;
		stats.mean = prices.reduce((a, b) => a + b, 0) / prices.length;
	}
	return stats;
}

function countBy(rows, key) {
	const counts = {};
	rows.forEach(r => {
		const v = r[key] || "inconnu";
		counts[v] = (counts[v] || 0) + 1;
	});
	return Object.entries(counts).sort((a, b) => b[1] - a[1]);
}

function histogram(rows, buckets) {
	const prices = rows.filter(r => r.price !== null).map(r => r.price);
	if (prices.length === 0) return [];
	const lo = Math.min(...prices), hi = Math.max(...prices);
	if (lo === hi) return [["" + fmt(lo), prices.length]];
	const width = (hi - lo) / buckets;
	const result = [];
	for (let i = 0; i < buckets; i++) {
		const a = lo + i * width, b = a + width;
		const count = prices.filter(p => p >= a && (i === buckets - 1 ? p <= b : p < b)).length;
		result.push([fmt(a) + " – " + fmt(b), count]);
	}
	return result;
}

function meanPriceByType(rows) {
	const sums = {}, counts = {};
	rows.forEach(r => {
		if (r.price === null) return;
		const t = r.type || "inconnu";
		sums[t] = (sums[t] || 0) + r.price;
		counts[t] = (counts[t] || 0) + 1;
	});
	return Object.keys(sums)
		.map(t => [t, sums[t] / counts[t]])
		.sort((a, b) => b[1] - a[1]);
}

function barChart(title, entries) {
	if (entries.length === 0) return "";
	const max = Math.max(...entries.map(e => e[1]), 1);
	let rows = "";
	entries.forEach(([label, count]) => {
		rows += '<div class="bar-row"><div class="bar-label" title="' + label + '">' + label +
			'</div><div class="bar-track"><div class="bar-fill" style="width:' +
			(100 * count / max) + '%"></div></div><div class="bar-count">' + fmt(count) + "</div></div>";
	});
	return '<div class="chart"><h2>' + title + "</h2>" + rows + "</div>";
}

function applyFilters() {
	const type = document.getElementById("f-type").value;
	const loc = document.getElementById("f-location").value.trim().toLowerCase();
	const min = parseFloat(document.getElementById("f-min").value);
	const max = parseFloat(document.getElementById("f-max").value);
	const noPrice = document.getElementById("f-noprice").checked;

	return LISTINGS.filter(r => {
		if (type && r.type !== type) return false;
		if (loc && !(r.location || "").toLowerCase().includes(loc)) return false;
		if (r.price === null) return noPrice;
		if (!isNaN(min) && r.price < min) return false;
		if (!isNaN(max) && r.price > max) return false;
		return true;
	});
}

function render() {
	const rows = applyFilters();
	const content = document.getElementById("content");

	let errorsHTML = "";
	if (PAGE_ERRORS.length > 0) {
		errorsHTML = '<div class="errors"><h2>Fetch failures (' + PAGE_ERRORS.length + ")</h2>" +
			PAGE_ERRORS.map(e => "<div>page " + e.page + ": " + e.message + "</div>").join("") + "</div>";
	}

	if (rows.length === 0) {
		content.innerHTML = errorsHTML + '<div class="empty">No data to display.</div>';
		return;
	}

	const stats = computeStats(rows);
	const metrics =
		'<div class="metrics">' +
		metric(fmt(stats.total), "Listings") +
		metric(fmt(stats.withPrice), "With price") +
		metric(fmt(stats.total - stats.withPrice), "Without price") +
		metric(fmt(stats.min), "Min FCFA") +
		metric(fmt(stats.median), "Median FCFA") +
		metric(fmt(stats.mean), "Mean FCFA") +
		metric(fmt(stats.max), "Max FCFA") +
		"</div>";

	const charts = '<div class="charts">' +
		barChart("Price distribution (FCFA)", histogram(rows, 10)) +
		barChart("Listings per type", countBy(rows, "type")) +
		barChart("Mean price per type (FCFA)", meanPriceByType(rows)) +
		barChart("Listings per category", countBy(rows, "category")) +
		barChart("Top locations", countBy(rows, "location").slice(0, 10)) +
		"</div>";

	let table = "<table><tr><th>Type</th><th>Category</th><th>Price</th><th>Raw price</th><th>Location</th><th>Page</th></tr>";
	rows.slice(0, 200).forEach(r => {
		const price = r.price === null ?
			'<td class="no-price">—</td>' : "<td>" + fmt(r.price) + "</td>";
		table += "<tr><td>" + esc(r.type) + "</td><td>" + esc(r.category) + "</td>" + price +
			"<td>" + esc(r.price_raw) + "</td><td>" + esc(r.location) + "</td><td>" + r.page + "</td></tr>";
	});
	table += "</table>";

	content.innerHTML = errorsHTML + metrics + charts + table;
}

function metric(value, label) {
	return '<div class="metric"><div class="value">' + value + '</div><div class="label">' + label + "</div></div>";
}

function esc(s) {
	return (s || "").replace(/&/g, "&amp;").replace(/</g, "&lt;").replace(/>/g, "&gt;");
}

// Populate the type selector from the data.
const typeSelect = document.getElementById("f-type");
[...new Set(LISTINGS.map(r => r.type).filter(Boolean))].sort().forEach(t => {
	const opt = document.createElement("option");
	opt.value = t;
	opt.textContent = t;
	typeSelect.appendChild(opt);
});

["f-type", "f-location", "f-min", "f-max", "f-noprice"].forEach(id => {
	document.getElementById(id).addEventListener("input", render);
});
render();
</script>
</body>
</html>`
