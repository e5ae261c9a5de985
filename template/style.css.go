package template

const StyleCSS = `
body {
  font-family: Cambria, Liberation Serif, Bitstream Vera Serif, Georgia, Times, Times New Roman, serif;
  line-height: 1.5;
  padding: 2em;
  margin: 0 auto;
  max-width: 35em;
}

h1 {
  font-size: 1.5em;
  margin-bottom: 0.5em;
}

.chapter-content {
  margin-top: 2em;
}

.chapter-content img {
  display: block;
  margin-left: auto;
  margin-right: auto;
  max-width: 100%;
  height: auto;
}
`
