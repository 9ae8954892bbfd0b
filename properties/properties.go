package properties

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"hermes"
)

var (
	ErrPropertyNoSet = fmt.Errorf("property is requied,but not set")
	ErrPropertyIsNil = fmt.Errorf("property and proerty default is nil")
)

func New(propertiesName string, propertiesType string, propertiesPath ...string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(propertiesName)
	v.SetConfigType(propertiesType)
	for _, p := range propertiesPath {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WithMessage(err, "read config")
	}
	return v, nil
}

func InitPropertyDef(ctx hermes.Context, def hermes.PropertyDef) (string, error) {
	buffer := &bytes.Buffer{}
	tWriter := tablewriter.NewWriter(buffer)
	tWriter.SetHeader([]string{"name", "type", "value"})
	tWriter.SetAutoFormatHeaders(false)
	tWriter.SetAutoWrapText(false)
	properties := ctx.Properties()
	for _, p := range def {
		if p.Required() {
			if !properties.IsSet(p.Name()) {
				return "", errors.WithMessage(ErrPropertyNoSet, p.Name())
			}
		} else {
			if p.Default() == nil && !properties.IsSet(p.Name()) {
				return "", errors.WithMessage(ErrPropertyIsNil, p.Name())
			} else {
				properties.SetDefault(p.Name(), p.Default())
			}
		}
		tWriter.Append([]string{
			p.Name(),
			p.Type(),
			fmt.Sprintf("%+v", properties.Get(p.Name())),
		})
	}
	tWriter.Render()
	return buffer.String(), nil
}
