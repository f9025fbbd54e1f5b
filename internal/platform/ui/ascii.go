// internal/platform/ui/ascii.go
package ui

// Banner se muestra en la cabecera del modo pretty
const Banner = `
 ┌─┐┌─┐┌─┐┌─┐┌┬┐  ┌┬┐┌─┐┌┐┌┬┌┬┐┌─┐┬─┐
 ├─┤└─┐└─┐├┤  │   ││││ ││││││ │ │ │├┬┘
 ┴ ┴└─┘└─┘└─┘ ┴   ┴ ┴└─┘┘└┘┴ ┴ └─┘┴└─
`
