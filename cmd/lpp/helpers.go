package main

import (
	"fmt"
	"io"

	"github.com/leofalp/lpp/internal/utils"
)

func emitJSON(w io.Writer, value any) error {
	_, err := fmt.Fprintln(w, utils.JSONToString(value, true))
	return err
}
