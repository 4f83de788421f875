package server

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Prahar Personality Quiz</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
h1 { text-align: center; }
.prahars { display: flex; gap: .25rem; margin: 1rem 0 2rem; }
.prahars span { flex: 1; height: .5rem; border-radius: .25rem; }
ol li { margin-bottom: 1rem; }
ul { list-style: upper-alpha; }
footer { color: #777; font-size: .8rem; text-align: center; margin-top: 2rem; }
</style>
</head>
<body>
<h1>Prahar Personality Quiz</h1>
<div class="prahars">{{range .Prahars}}<span title="{{.Name}}" style="background: {{.Color}}"></span>{{end}}</div>
<p>Answer ten questions to discover which Prahar of the day matches your personality.
Play in your terminal with <code>prahar play</code>, or POST your answers to <code>/api/predict</code>.</p>
<ol>
{{range .Questions}}<li>{{.Question}}
<ul>{{range .Options}}<li>{{.}}</li>{{end}}</ul>
</li>
{{end}}</ol>
<footer>prahar {{.Version}}</footer>
</body>
</html>
`
