// Package env contains a function to load configuration from environment.
package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Unmarshaler can be implemented to override the unmarshaling process.
type Unmarshaler interface {
	UnmarshalEnv(prefix string, v string) error
}

func loadEnvInternal(env map[string]string, prefix string, prv reflect.Value) error {
	if prv.Kind() != reflect.Pointer {
		return loadEnvInternal(env, prefix, prv.Addr())
	}

	rt := prv.Type().Elem()

	if i, ok := prv.Interface().(Unmarshaler); ok {
		if ev, ok := env[prefix]; ok {
			if prv.IsNil() {
				prv.Set(reflect.New(rt))
				i = prv.Interface().(Unmarshaler)
			}
			err := i.UnmarshalEnv(prefix, ev)
			if err != nil {
				return fmt.Errorf("%s: %w", prefix, err)
			}
		}
		return nil
	}

	ev, ok := env[prefix]

	switch rt.Kind() {
	case reflect.String:
		if ok {
			if prv.IsNil() {
				prv.Set(reflect.New(rt))
			}
			prv.Elem().SetString(ev)
		}
		return nil

	case reflect.Int:
		if ok {
			iv, err := strconv.ParseInt(ev, 10, 32)
			if err != nil {
				return fmt.Errorf("%s: %w", prefix, err)
			}
			if prv.IsNil() {
				prv.Set(reflect.New(rt))
			}
			prv.Elem().SetInt(iv)
		}
		return nil

	case reflect.Bool:
		if ok {
			var bv bool
			switch strings.ToLower(ev) {
			case "yes", "true":
				bv = true

			case "no", "false":
				bv = false

			default:
				return fmt.Errorf("%s: invalid value '%s'", prefix, ev)
			}
			if prv.IsNil() {
				prv.Set(reflect.New(rt))
			}
			prv.Elem().SetBool(bv)
		}
		return nil

	case reflect.Struct:
		flen := rt.NumField()
		for i := 0; i < flen; i++ {
			f := rt.Field(i)
			jsonTag := f.Tag.Get("json")

			// load only public fields
			if jsonTag == "-" || !f.IsExported() {
				continue
			}

			key := strings.Split(jsonTag, ",")[0]
			if key == "" {
				key = f.Name
			}

			err := loadEnvInternal(env, prefix+"_"+strings.ToUpper(key), prv.Elem().Field(i))
			if err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("unsupported type: %v", rt)
}

func loadWithEnv(env map[string]string, prefix string, v any) error {
	return loadEnvInternal(env, prefix, reflect.ValueOf(v).Elem())
}

func envToMap() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		tmp := strings.SplitN(kv, "=", 2)
		env[tmp[0]] = tmp[1]
	}
	return env
}

// Load loads the configuration from the environment.
// Every field is read from a variable named after the prefix
// and the upper-cased json tag, separated by an underscore.
func Load(prefix string, v any) error {
	return loadWithEnv(envToMap(), prefix, v)
}
