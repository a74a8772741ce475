package ui

import (
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle    = "app_title"
	KeySettings    = "settings"
	KeyFile        = "file"
	KeyLanguage    = "language"
	KeySave        = "save"
	KeyCancel      = "cancel"
	KeyBrowse      = "browse"
	KeyRenamerTab  = "renamer_tab"
	KeyDownloadTab = "downloader_tab"

	// Renamer
	KeyDirectory           = "directory"
	KeyNoDirectory         = "no_directory"
	KeyPrefix              = "prefix"
	KeySuffix              = "suffix"
	KeyFind                = "find"
	KeyReplace             = "replace"
	KeyRename              = "rename"
	KeyAwaitingDirectory   = "awaiting_directory"
	KeyDirectorySelected   = "directory_selected"
	KeyRenaming            = "renaming"
	KeyRenamingComplete    = "renaming_complete"
	KeyRenamingFailed      = "renaming_failed"
	KeyNoFilesFound        = "no_files_found"
	KeyNoFilesToRename     = "no_files_to_rename"
	KeyNothingToRename     = "nothing_to_rename"
	KeyConfirmRename       = "confirm_rename"
	KeyConfirmRenameFormat = "confirm_rename_format"
	KeyRenameSummaryFormat = "rename_summary_format"
	KeyNotAttemptedFormat  = "not_attempted_format"
	KeyPreviewCountFormat  = "preview_count_format"
	KeyStopOnError         = "stop_on_error"
	KeyErrorOpeningDir     = "error_opening_dir"

	// Downloader
	KeyDownload                = "download"
	KeyStop                    = "stop"
	KeyEnterURL                = "enter_url"
	KeyDownloadDirectory       = "download_directory"
	KeyQualityPreset           = "quality_preset"
	KeyFilenameTemplate        = "filename_template"
	KeyAutoReveal              = "auto_reveal"
	KeyDownloadStarted         = "download_started"
	KeyDownloadingFormat       = "downloading_format"
	KeyFinishedDownloadingFmt  = "finished_downloading_format"
	KeyDownloadProcessFinished = "download_process_finished"
	KeyDownloadStopped         = "download_stopped"
	KeyDownloadFailed          = "download_failed"
	KeyStoppingDownload        = "stopping_download"
	KeyInvalidURL              = "invalid_url"
	KeyPleaseEnterURL          = "please_enter_url"
	KeyDownloadBusy            = "download_busy"
	KeyErrorOpeningFile        = "error_opening_file"
	KeySettingsSaved           = "settings_saved"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the language from
// the LANG environment variable and falls back to English.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" || lang == "" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage extracts the two-letter code from LANG ("ru_RU.UTF-8" -> "ru")
func systemLanguage() string {
	lang := os.Getenv("LANG")
	if len(lang) < 2 {
		return "en"
	}
	return strings.ToLower(lang[:2])
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:    "Desk Utils",
		KeySettings:    "Settings",
		KeyFile:        "File",
		KeyLanguage:    "Language",
		KeySave:        "Save",
		KeyCancel:      "Cancel",
		KeyBrowse:      "Browse",
		KeyRenamerTab:  "Batch Renamer",
		KeyDownloadTab: "YouTube Downloader",

		KeyDirectory:           "Directory",
		KeyNoDirectory:         "No directory selected",
		KeyPrefix:              "Prefix",
		KeySuffix:              "Suffix",
		KeyFind:                "Find",
		KeyReplace:             "Replace with",
		KeyRename:              "Rename",
		KeyAwaitingDirectory:   "Awaiting directory selection.",
		KeyDirectorySelected:   "Directory selected.",
		KeyRenaming:            "Renaming...",
		KeyRenamingComplete:    "Renaming complete.",
		KeyRenamingFailed:      "Renaming failed.",
		KeyNoFilesFound:        "No files found in the selected directory.",
		KeyNoFilesToRename:     "No files to rename.",
		KeyNothingToRename:     "The rules do not change any file name.",
		KeyConfirmRename:       "Confirm rename",
		KeyConfirmRenameFormat: "Rename %d of %d files?",
		KeyRenameSummaryFormat: "Renamed %d, skipped %d, failed %d",
		KeyNotAttemptedFormat:  "Not attempted: %d",
		KeyPreviewCountFormat:  "%d files, %d to rename, %d conflicts",
		KeyStopOnError:         "Stop renaming at the first error",
		KeyErrorOpeningDir:     "Cannot open directory",

		KeyDownload:                "Download",
		KeyStop:                    "Stop",
		KeyEnterURL:                "Enter YouTube URL (https://youtube.com/watch?v=...)",
		KeyDownloadDirectory:       "Download Directory",
		KeyQualityPreset:           "Quality Preset",
		KeyFilenameTemplate:        "Filename Template",
		KeyAutoReveal:              "Reveal file when download completes",
		KeyDownloadStarted:         "Download started",
		KeyDownloadingFormat:       "Downloading: %d%%",
		KeyFinishedDownloadingFmt:  "Finished downloading: %s",
		KeyDownloadProcessFinished: "Download process finished.",
		KeyDownloadStopped:         "Download stopped",
		KeyDownloadFailed:          "Download failed",
		KeyStoppingDownload:        "Stopping download...",
		KeyInvalidURL:              "Invalid URL",
		KeyPleaseEnterURL:          "Please enter a URL",
		KeyDownloadBusy:            "A download is already running",
		KeyErrorOpeningFile:        "Error opening file",
		KeySettingsSaved:           "Settings saved successfully!",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:    "Desk Utils",
		KeySettings:    "Настройки",
		KeyFile:        "Файл",
		KeyLanguage:    "Язык",
		KeySave:        "Сохранить",
		KeyCancel:      "Отмена",
		KeyBrowse:      "Обзор",
		KeyRenamerTab:  "Переименование",
		KeyDownloadTab: "Загрузчик YouTube",

		KeyDirectory:           "Папка",
		KeyNoDirectory:         "Папка не выбрана",
		KeyPrefix:              "Префикс",
		KeySuffix:              "Суффикс",
		KeyFind:                "Найти",
		KeyReplace:             "Заменить на",
		KeyRename:              "Переименовать",
		KeyAwaitingDirectory:   "Ожидание выбора папки.",
		KeyDirectorySelected:   "Папка выбрана.",
		KeyRenaming:            "Переименование...",
		KeyRenamingComplete:    "Переименование завершено.",
		KeyRenamingFailed:      "Переименование не удалось.",
		KeyNoFilesFound:        "В выбранной папке нет файлов.",
		KeyNoFilesToRename:     "Нет файлов для переименования.",
		KeyNothingToRename:     "Правила не меняют ни одного имени.",
		KeyConfirmRename:       "Подтвердите переименование",
		KeyConfirmRenameFormat: "Переименовать %d из %d файлов?",
		KeyRenameSummaryFormat: "Переименовано %d, пропущено %d, ошибок %d",
		KeyNotAttemptedFormat:  "Не обработано: %d",
		KeyPreviewCountFormat:  "Файлов %d, к переименованию %d, конфликтов %d",
		KeyStopOnError:         "Останавливаться при первой ошибке",
		KeyErrorOpeningDir:     "Не удалось открыть папку",

		KeyDownload:                "Скачать",
		KeyStop:                    "Стоп",
		KeyEnterURL:                "Введите URL YouTube (https://youtube.com/watch?v=...)",
		KeyDownloadDirectory:       "Папка загрузки",
		KeyQualityPreset:           "Предустановка качества",
		KeyFilenameTemplate:        "Шаблон имени файла",
		KeyAutoReveal:              "Показать файл после загрузки",
		KeyDownloadStarted:         "Загрузка начата",
		KeyDownloadingFormat:       "Загрузка: %d%%",
		KeyFinishedDownloadingFmt:  "Загрузка завершена: %s",
		KeyDownloadProcessFinished: "Процесс загрузки завершён.",
		KeyDownloadStopped:         "Загрузка остановлена",
		KeyDownloadFailed:          "Ошибка загрузки",
		KeyStoppingDownload:        "Остановка загрузки...",
		KeyInvalidURL:              "Неверный URL",
		KeyPleaseEnterURL:          "Пожалуйста, введите URL",
		KeyDownloadBusy:            "Загрузка уже выполняется",
		KeyErrorOpeningFile:        "Ошибка открытия файла",
		KeySettingsSaved:           "Настройки успешно сохранены!",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:    "Desk Utils",
		KeySettings:    "Configurações",
		KeyFile:        "Arquivo",
		KeyLanguage:    "Idioma",
		KeySave:        "Salvar",
		KeyCancel:      "Cancelar",
		KeyBrowse:      "Navegar",
		KeyRenamerTab:  "Renomeador em lote",
		KeyDownloadTab: "Downloader do YouTube",

		KeyDirectory:           "Diretório",
		KeyNoDirectory:         "Nenhum diretório selecionado",
		KeyPrefix:              "Prefixo",
		KeySuffix:              "Sufixo",
		KeyFind:                "Localizar",
		KeyReplace:             "Substituir por",
		KeyRename:              "Renomear",
		KeyAwaitingDirectory:   "Aguardando seleção de diretório.",
		KeyDirectorySelected:   "Diretório selecionado.",
		KeyRenaming:            "Renomeando...",
		KeyRenamingComplete:    "Renomeação concluída.",
		KeyRenamingFailed:      "Falha na renomeação.",
		KeyNoFilesFound:        "Nenhum arquivo encontrado no diretório selecionado.",
		KeyNoFilesToRename:     "Nenhum arquivo para renomear.",
		KeyNothingToRename:     "As regras não alteram nenhum nome.",
		KeyConfirmRename:       "Confirmar renomeação",
		KeyConfirmRenameFormat: "Renomear %d de %d arquivos?",
		KeyRenameSummaryFormat: "Renomeados %d, ignorados %d, falhas %d",
		KeyNotAttemptedFormat:  "Não processados: %d",
		KeyPreviewCountFormat:  "%d arquivos, %d a renomear, %d conflitos",
		KeyStopOnError:         "Parar no primeiro erro",
		KeyErrorOpeningDir:     "Não foi possível abrir o diretório",

		KeyDownload:                "Baixar",
		KeyStop:                    "Parar",
		KeyEnterURL:                "Digite URL do YouTube (https://youtube.com/watch?v=...)",
		KeyDownloadDirectory:       "Diretório de Download",
		KeyQualityPreset:           "Predefinição de Qualidade",
		KeyFilenameTemplate:        "Modelo de Nome de Arquivo",
		KeyAutoReveal:              "Mostrar arquivo ao concluir",
		KeyDownloadStarted:         "Download iniciado",
		KeyDownloadingFormat:       "Baixando: %d%%",
		KeyFinishedDownloadingFmt:  "Download concluído: %s",
		KeyDownloadProcessFinished: "Processo de download finalizado.",
		KeyDownloadStopped:         "Download interrompido",
		KeyDownloadFailed:          "Falha no download",
		KeyStoppingDownload:        "Parando download...",
		KeyInvalidURL:              "URL inválida",
		KeyPleaseEnterURL:          "Por favor, digite uma URL",
		KeyDownloadBusy:            "Um download já está em andamento",
		KeyErrorOpeningFile:        "Erro ao abrir arquivo",
		KeySettingsSaved:           "Configurações salvas com sucesso!",
	}
}
