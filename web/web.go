// Package web contiene los assets estáticos embebidos en el binario.
package web

import _ "embed"

// Landing página HTML pública servida en la raíz.
//
//go:embed landing.html
var Landing []byte
