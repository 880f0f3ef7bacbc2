package sanitize

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFor(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"Acme.sln", KindSolution},
		{"Setup/Setup.VDPROJ", KindInstallerProject},
		{"App/App.csproj", KindXMLProject},
		{"App.vbproj", KindXMLProject},
		{"Db.dbproj", KindXMLProject},
		{"Native.vcxproj", KindXMLProject},
		{"Cfx.cfxproj", KindXMLProject},
		{"Installer.WixProj", KindXMLProject},
		{"Old.vcproj", KindLegacyXMLProject},
		{"Program.cs", KindGeneric},
		{"Makefile", KindGeneric},
		{"csproj", KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, KindFor(tt.path))
		})
	}
}

func TestNativePath(t *testing.T) {
	assert.Equal(t, filepath.Join("..", "lib", "x.dll"), nativePath(`..\lib\x.dll`))
	assert.Equal(t, filepath.Join("lib", "x.dll"), nativePath("lib/x.dll"))
}
