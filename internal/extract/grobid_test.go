package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pustaka-ai/pustaka/internal/model"
)

const sampleTEI = `<?xml version="1.0" encoding="UTF-8"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <teiHeader>
    <fileDesc>
      <titleStmt><title>Produktivitas Padi di Blitar</title></titleStmt>
      <publicationStmt>
        <publisher>IPB Press</publisher>
        <date when="2020-06-15">Juni 2020</date>
      </publicationStmt>
      <sourceDesc>
        <biblStruct>
          <analytic>
            <author><persName><forename>Budi</forename><surname>Santoso</surname></persName></author>
            <author><persName><forename>Siti</forename><surname>Aminah</surname></persName></author>
          </analytic>
          <idno type="DOI">10.1234/jurnal.v5.678</idno>
        </biblStruct>
      </sourceDesc>
    </fileDesc>
    <profileDesc>
      <abstract><div><p>Ringkasan kajian produktivitas padi.</p></div></abstract>
      <langUsage><language ident="id"/></langUsage>
    </profileDesc>
  </teiHeader>
  <text>
    <body>
      <div><head>Pendahuluan</head><p>Paragraf pembuka tentang padi.</p><p>Paragraf kedua.</p></div>
      <div><head>Metode</head><p>Survei lapangan di tiga kecamatan.</p></div>
      <div><head> </head></div>
    </body>
    <back>
      <div type="references">
        <listBibl>
          <biblStruct><analytic><title>Irigasi dan Produksi Beras</title></analytic></biblStruct>
        </listBibl>
      </div>
    </back>
  </text>
</TEI>`

func TestParseTEI(t *testing.T) {
	result, err := parseTEI([]byte(sampleTEI))
	require.NoError(t, err)

	require.Equal(t, "Produktivitas Padi di Blitar", result.Metadata.Title)
	require.Equal(t, "Budi Santoso; Siti Aminah", result.Metadata.Creator)
	require.Equal(t, "IPB Press", result.Metadata.Publisher)
	require.Equal(t, "2020-06-15", result.Metadata.Date)
	require.Equal(t, "10.1234/jurnal.v5.678", result.Metadata.DOI)
	require.Equal(t, "id", result.Metadata.Language)
	require.Equal(t, "Ringkasan kajian produktivitas padi.", result.Abstract)

	require.Len(t, result.Sections, 5)
	require.Equal(t, model.SectionTitle, result.Sections[0].Type)
	require.Equal(t, model.SectionAbstract, result.Sections[1].Type)
	require.Equal(t, model.SectionBody, result.Sections[2].Type)
	require.Equal(t, "Pendahuluan", result.Sections[2].Title)
	require.Len(t, result.Sections[2].Paragraphs, 2)
	require.Equal(t, "Metode", result.Sections[3].Title)
	require.Equal(t, model.SectionRefs, result.Sections[4].Type)
	require.Equal(t, []string{"Irigasi dan Produksi Beras"}, result.Sections[4].Paragraphs)

	require.Contains(t, result.Fulltext, "Paragraf pembuka tentang padi.")
}

func TestParseTEIInvalid(t *testing.T) {
	_, err := parseTEI([]byte("not xml at all"))
	require.Error(t, err)
}

func TestParseTEIDateFallsBackToText(t *testing.T) {
	const tei = `<TEI><teiHeader><fileDesc>
		<titleStmt><title>Judul</title></titleStmt>
		<publicationStmt><date>2019</date></publicationStmt>
	</fileDesc></teiHeader></TEI>`
	result, err := parseTEI([]byte(tei))
	require.NoError(t, err)
	require.Equal(t, "2019", result.Metadata.Date)
}
